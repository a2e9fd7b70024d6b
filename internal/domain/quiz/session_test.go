package quiz_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/helix-study/backend/internal/domain/quiz"
	"github.com/helix-study/backend/internal/domain/term"
	"github.com/helix-study/backend/internal/store"
)

// seedSession creates an in-memory store with one user, one group, and
// n terms, and returns a session bound to it.
func seedSession(t *testing.T, username string, n int) (*quiz.Session, *store.SQLStore, *term.TermGroup) {
	t.Helper()

	st, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()

	u, _ := term.NewUser(username)
	if err := st.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	g, _ := term.NewGroup(u.ID, "Default")
	if err := st.CreateGroup(ctx, g); err != nil {
		t.Fatalf("create group: %v", err)
	}

	for i := 0; i < n; i++ {
		tm, _ := term.NewTerm(g.ID, fmt.Sprintf("term-%d", i), fmt.Sprintf("definition-%d", i))
		if err := st.CreateTerm(ctx, tm); err != nil {
			t.Fatalf("create term: %v", err)
		}
	}

	return quiz.NewSession(st), st, g
}

// runWriteQuiz drives a full write-mode quiz, answering the first
// `correct` questions right and the rest wrong.
func runWriteQuiz(t *testing.T, s *quiz.Session, correct int) {
	t.Helper()
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("start quiz: %v", err)
	}

	answered := 0
	for {
		q, err := s.NextQuestion()
		if errors.Is(err, quiz.ErrPoolExhausted) {
			break
		}
		if err != nil {
			t.Fatalf("next question: %v", err)
		}

		answer := quiz.Answer{Text: q.Write.Term}
		if answered >= correct {
			answer.Text = "definitely wrong"
		}
		if _, err := s.SubmitAnswer(ctx, q, answer); err != nil {
			t.Fatalf("submit answer: %v", err)
		}
		answered++
	}
}

func TestSession_SetActiveUser(t *testing.T) {
	s, _, _ := seedSession(t, "alice", 0)
	ctx := context.Background()

	if err := s.SetActiveUser(ctx, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ActiveUser() == nil || s.ActiveUser().Username != "alice" {
		t.Errorf("expected active user alice, got %+v", s.ActiveUser())
	}
}

func TestSession_SetActiveUser_Unknown(t *testing.T) {
	s, _, _ := seedSession(t, "alice", 0)

	err := s.SetActiveUser(context.Background(), "nobody")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected store.ErrNotFound, got %v", err)
	}
	if s.ActiveUser() != nil {
		t.Error("failed lookup must not set an active user")
	}
}

func TestSession_Terms_NoGroup(t *testing.T) {
	s, _, _ := seedSession(t, "alice", 3)

	if _, err := s.Terms(context.Background()); !errors.Is(err, quiz.ErrNoTermGroup) {
		t.Errorf("expected ErrNoTermGroup, got %v", err)
	}
}

func TestSession_Start_NoMode(t *testing.T) {
	s, _, g := seedSession(t, "alice", 3)
	s.SetTermGroup(g)

	if err := s.Start(context.Background()); !errors.Is(err, quiz.ErrNoGameMode) {
		t.Errorf("expected ErrNoGameMode, got %v", err)
	}
}

func TestSession_Start_EmptyGroup(t *testing.T) {
	s, _, g := seedSession(t, "alice", 0)
	s.SetTermGroup(g)
	s.SetGameMode(&quiz.WriteMode{})

	if err := s.Start(context.Background()); !errors.Is(err, quiz.ErrEmptyGroup) {
		t.Errorf("expected ErrEmptyGroup, got %v", err)
	}
}

func TestSession_AddPoints_NoUser(t *testing.T) {
	s, _, _ := seedSession(t, "alice", 0)

	if err := s.AddPoints(context.Background(), 2); !errors.Is(err, quiz.ErrNoActiveUser) {
		t.Errorf("expected ErrNoActiveUser, got %v", err)
	}
}

func TestSession_ScoreAccumulation(t *testing.T) {
	s, _, g := seedSession(t, "alice", 3)
	ctx := context.Background()

	if err := s.SetActiveUser(ctx, "alice"); err != nil {
		t.Fatalf("set user: %v", err)
	}
	s.SetTermGroup(g)
	s.SetGameMode(&quiz.WriteMode{})

	// First run: two right, one wrong.
	runWriteQuiz(t, s, 2)
	if s.Score() != 2 {
		t.Fatalf("expected session score 2, got %d", s.Score())
	}

	total, err := s.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total score 2, got %d", total)
	}

	// Second run: one right, two wrong; totals fold together.
	s.SetGameMode(&quiz.WriteMode{})
	runWriteQuiz(t, s, 1)
	if s.Score() != 1 {
		t.Fatalf("expected session score 1, got %d", s.Score())
	}

	total, err = s.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total score 3, got %d", total)
	}
}

func TestSession_MasteryPersisted(t *testing.T) {
	s, st, g := seedSession(t, "alice", 3)
	ctx := context.Background()

	if err := s.SetActiveUser(ctx, "alice"); err != nil {
		t.Fatalf("set user: %v", err)
	}
	s.SetTermGroup(g)
	s.SetGameMode(&quiz.WriteMode{})

	runWriteQuiz(t, s, 3)

	terms, err := st.ListTermsByGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("list terms: %v", err)
	}
	for _, tm := range terms {
		if tm.TotalAns != 1 || tm.CorrectAns != 1 {
			t.Errorf("term %q: total=%d correct=%d, want 1/1", tm.Term, tm.TotalAns, tm.CorrectAns)
		}
		if tm.MasteryCoef != 1.0 {
			t.Errorf("term %q: mastery %v, want 1.0", tm.Term, tm.MasteryCoef)
		}
	}
}

func TestSession_ResetIdempotent(t *testing.T) {
	s, _, g := seedSession(t, "alice", 3)
	ctx := context.Background()

	if err := s.SetActiveUser(ctx, "alice"); err != nil {
		t.Fatalf("set user: %v", err)
	}
	s.SetTermGroup(g)
	s.SetGameMode(&quiz.WriteMode{})
	runWriteQuiz(t, s, 2)

	s.Reset()
	s.Reset()

	if s.ActiveUser() != nil || s.TermGroup() != nil || s.GameMode() != nil {
		t.Error("expected all session state cleared after reset")
	}
	if s.Score() != 0 {
		t.Errorf("expected score 0 after reset, got %d", s.Score())
	}
}
