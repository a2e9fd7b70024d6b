package term_test

import (
	"math"
	"testing"

	"github.com/helix-study/backend/internal/domain/term"
)

func TestNewTerm(t *testing.T) {
	tm, err := term.NewTerm("group1", "Riga", "Capital of Latvia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tm.Term != "Riga" {
		t.Errorf("expected term %q, got %q", "Riga", tm.Term)
	}
	if tm.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tm.TotalAns != 0 || tm.CorrectAns != 0 {
		t.Errorf("expected fresh counters, got total=%d correct=%d", tm.TotalAns, tm.CorrectAns)
	}
	if tm.MasteryCoef != 0 {
		t.Errorf("expected mastery 0 for unanswered term, got %v", tm.MasteryCoef)
	}
}

func TestNewTerm_EmptyFields(t *testing.T) {
	if _, err := term.NewTerm("g", "", "definition"); err == nil {
		t.Error("expected error for empty term")
	}
	if _, err := term.NewTerm("g", "word", ""); err == nil {
		t.Error("expected error for empty definition")
	}
}

func TestNewUser_EmptyUsername(t *testing.T) {
	if _, err := term.NewUser(""); err == nil {
		t.Error("expected error for empty username")
	}
}

func TestNewGroup_EmptyName(t *testing.T) {
	if _, err := term.NewGroup("user1", ""); err == nil {
		t.Error("expected error for empty group name")
	}
}

func TestRecordAnswer_Counters(t *testing.T) {
	tm, _ := term.NewTerm("g", "Riga", "Capital of Latvia")

	tm.RecordAnswer(true)
	if tm.TotalAns != 1 || tm.CorrectAns != 1 {
		t.Errorf("after correct answer: total=%d correct=%d", tm.TotalAns, tm.CorrectAns)
	}
	if tm.MasteryCoef != 1.0 {
		t.Errorf("expected mastery 1.0, got %v", tm.MasteryCoef)
	}

	tm.RecordAnswer(false)
	if tm.TotalAns != 2 || tm.CorrectAns != 1 {
		t.Errorf("after wrong answer: total=%d correct=%d", tm.TotalAns, tm.CorrectAns)
	}
	if tm.MasteryCoef != 0.5 {
		t.Errorf("expected mastery 0.5, got %v", tm.MasteryCoef)
	}
}

func TestRecordAnswer_Monotonicity(t *testing.T) {
	tm, _ := term.NewTerm("g", "Riga", "Capital of Latvia")

	answers := []bool{true, false, true, true, false, false, true, false, true, true}
	for i, correct := range answers {
		prevTotal := tm.TotalAns
		prevCorrect := tm.CorrectAns

		tm.RecordAnswer(correct)

		if tm.TotalAns != prevTotal+1 {
			t.Fatalf("call %d: total went %d -> %d", i, prevTotal, tm.TotalAns)
		}
		wantCorrect := prevCorrect
		if correct {
			wantCorrect++
		}
		if tm.CorrectAns != wantCorrect {
			t.Fatalf("call %d: correct went %d -> %d, want %d", i, prevCorrect, tm.CorrectAns, wantCorrect)
		}

		want := float64(tm.CorrectAns) / float64(tm.TotalAns)
		if math.Abs(tm.MasteryCoef-want) > 1e-12 {
			t.Fatalf("call %d: mastery %v, want %v", i, tm.MasteryCoef, want)
		}
		if tm.MasteryCoef < 0 || tm.MasteryCoef > 1 {
			t.Fatalf("call %d: mastery %v out of [0,1]", i, tm.MasteryCoef)
		}
	}
}
