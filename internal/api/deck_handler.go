package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/helix-study/backend/internal/deckfile"
	"github.com/helix-study/backend/internal/store"
)

// maxDeckUpload caps uploaded deck files at 10 MiB.
const maxDeckUpload = 10 << 20

// POST /groups/{groupID}/import
// Multipart upload with a "deck" file field; format inferred from the
// file extension.
func (h *Handler) importDeck(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")

	if err := r.ParseMultipartForm(maxDeckUpload); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("deck")
	if err != nil {
		http.Error(w, "deck file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	format, err := deckfile.ParseFormat(filepath.Ext(header.Filename))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := deckfile.Import(r.Context(), h.store, groupID, format, file, deckfile.DefaultImportConfig())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}
		h.logger.Error("deck import failed", "error", err, "group_id", groupID)
		http.Error(w, "import failed", http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GET /groups/{groupID}/export?format=xlsx|csv
func (h *Handler) exportDeck(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = "xlsx"
	}
	format, err := deckfile.ParseFormat(formatName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := h.store.GetGroup(r.Context(), groupID)
	if h.handleStoreError(w, err, "group") {
		return
	}

	switch format {
	case deckfile.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	case deckfile.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(group.Name, format)+`"`)

	if err := deckfile.Export(r.Context(), h.store, groupID, format, w); err != nil {
		h.logger.Error("deck export failed", "error", err, "group_id", groupID)
	}
}

// exportFilename builds a download name from the group name, dropping
// characters that would break a quoted Content-Disposition value.
func exportFilename(name string, format deckfile.Format) string {
	clean := strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return -1
		}
		return r
	}, name)
	if clean == "" {
		clean = "deck"
	}
	return clean + "." + string(format)
}
