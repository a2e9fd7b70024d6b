// Package simulation walks a full quiz session against a throwaway
// in-memory store, as a smoke check of the whole stack without a
// client.
package simulation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helix-study/backend/internal/domain/quiz"
	"github.com/helix-study/backend/internal/domain/term"
	"github.com/helix-study/backend/internal/store"
)

var seedTerms = map[string]string{
	"Latvia":    "Country between Estonia and Lithuania",
	"Estonia":   "Country above Latvia",
	"Lithuania": "Country below Latvia",
	"England":   "Country where English is spoken",
	"Germany":   "Country where Germans live",
}

// Run seeds one user and one term group, plays a write-mode quiz
// answering every other question correctly, and folds the score.
func Run(logger *slog.Logger) error {
	st, err := store.NewSQLite(":memory:")
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	user, err := term.NewUser("demo")
	if err != nil {
		return err
	}
	if err := st.CreateUser(ctx, user); err != nil {
		return err
	}

	group, err := term.NewGroup(user.ID, "Countries")
	if err != nil {
		return err
	}
	if err := st.CreateGroup(ctx, group); err != nil {
		return err
	}

	for word, definition := range seedTerms {
		t, err := term.NewTerm(group.ID, word, definition)
		if err != nil {
			return err
		}
		if err := st.CreateTerm(ctx, t); err != nil {
			return err
		}
	}

	session := quiz.NewSession(st)
	if err := session.SetActiveUser(ctx, "demo"); err != nil {
		return err
	}
	session.SetTermGroup(group)
	session.SetGameMode(&quiz.WriteMode{})

	if err := session.Start(ctx); err != nil {
		return err
	}

	round := 0
	for {
		q, err := session.NextQuestion()
		if err != nil {
			break
		}

		answer := quiz.Answer{Text: q.Write.Term}
		if round%2 == 1 {
			answer.Text = "no idea"
		}

		earned, err := session.SubmitAnswer(ctx, q, answer)
		if err != nil {
			return err
		}
		logger.Info("answered",
			"definition", q.Write.Definition,
			"answer", answer.Text,
			"earned", earned,
		)
		round++
	}

	total, err := session.Finish(ctx)
	if err != nil {
		return err
	}
	logger.Info("quiz finished",
		"session_score", session.Score(),
		"total_score", total,
	)

	terms, err := st.ListTermsByGroup(ctx, group.ID)
	if err != nil {
		return err
	}
	for _, t := range terms {
		logger.Info("mastery",
			"term", t.Term,
			"coef", fmt.Sprintf("%.2f", t.MasteryCoef),
			"answers", t.TotalAns,
		)
	}

	return nil
}
