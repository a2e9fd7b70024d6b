package quiz_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/helix-study/backend/internal/domain/quiz"
	"github.com/helix-study/backend/internal/domain/term"
)

func makeTerms(n int) []term.Term {
	terms := make([]term.Term, 0, n)
	for i := 0; i < n; i++ {
		t, _ := term.NewTerm("group1",
			fmt.Sprintf("term-%d", i),
			fmt.Sprintf("definition-%d", i),
		)
		terms = append(terms, *t)
	}
	return terms
}

func sameOrder(a, b []term.Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func TestBuildPool_EmptyGroup(t *testing.T) {
	_, err := quiz.BuildPool(nil)
	if !errors.Is(err, quiz.ErrEmptyGroup) {
		t.Errorf("expected ErrEmptyGroup, got %v", err)
	}
}

func TestBuildPool_IncludesAllTerms(t *testing.T) {
	terms := makeTerms(10)
	pool, err := quiz.BuildPool(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pool) != 10 {
		t.Fatalf("expected 10 terms, got %d", len(pool))
	}

	seen := make(map[string]bool)
	for _, tm := range pool {
		seen[tm.ID] = true
	}
	for _, tm := range terms {
		if !seen[tm.ID] {
			t.Errorf("term %q missing from pool", tm.Term)
		}
	}
}

func TestBuildPool_ShufflesOrder(t *testing.T) {
	terms := makeTerms(20)

	// With 20 terms a repeated identical order is statistically
	// impossible across ten shuffles.
	first, err := quiz.BuildPool(terms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	foundDifferentOrder := false
	for i := 0; i < 10; i++ {
		pool, err := quiz.BuildPool(terms)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sameOrder(first, pool) {
			foundDifferentOrder = true
			break
		}
	}

	if !foundDifferentOrder {
		t.Error("expected pool order to vary across builds")
	}
}

func TestBuildPool_DoesNotMutateInput(t *testing.T) {
	terms := makeTerms(20)
	original := make([]term.Term, len(terms))
	copy(original, terms)

	if _, err := quiz.BuildPool(terms); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sameOrder(original, terms) {
		t.Error("BuildPool mutated the input slice")
	}
}

func TestBuildChoiceQuestion_Correctness(t *testing.T) {
	pool := makeTerms(6)

	// Randomized placement: run enough rounds to cover all slots.
	for round := 0; round < 50; round++ {
		target := pool[round%len(pool)]

		q, err := quiz.BuildChoiceQuestion(target, pool)
		if err != nil {
			t.Fatalf("round %d: unexpected error: %v", round, err)
		}

		if q.Options[q.CorrectIndex] != target.Definition {
			t.Fatalf("round %d: correct slot holds %q, want %q",
				round, q.Options[q.CorrectIndex], target.Definition)
		}

		matches := 0
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			if opt == target.Definition {
				matches++
			}
			if seen[opt] {
				t.Fatalf("round %d: duplicate option %q", round, opt)
			}
			seen[opt] = true
		}
		if matches != 1 {
			t.Fatalf("round %d: target definition appears %d times", round, matches)
		}
	}
}

func TestBuildChoiceQuestion_InsufficientPool(t *testing.T) {
	pool := makeTerms(3)
	_, err := quiz.BuildChoiceQuestion(pool[0], pool)
	if !errors.Is(err, quiz.ErrInsufficientPool) {
		t.Errorf("expected ErrInsufficientPool, got %v", err)
	}
}

// Distractor exclusion works on definition text, not term identity:
// only the first pool entry carrying the target's definition is held
// out of the candidate set.
func TestBuildChoiceQuestion_ExcludesByDefinitionValue(t *testing.T) {
	pool := makeTerms(5)
	duplicate, _ := term.NewTerm("group1", "copycat", pool[0].Definition)
	pool = append(pool, *duplicate)

	for round := 0; round < 20; round++ {
		q, err := quiz.BuildChoiceQuestion(pool[0], pool)
		if err != nil {
			t.Fatalf("round %d: unexpected error: %v", round, err)
		}
		if q.Options[q.CorrectIndex] != pool[0].Definition {
			t.Fatalf("round %d: correct slot holds %q", round, q.Options[q.CorrectIndex])
		}
	}
}

func TestBuildMatchQuestion_ConsumesFourFromFront(t *testing.T) {
	pool := makeTerms(9)

	q, rest, err := quiz.BuildMatchQuestion(pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rest) != 5 {
		t.Fatalf("expected 5 terms left, got %d", len(rest))
	}

	for i, pair := range q.Terms {
		if pair.TermID != pool[i].ID {
			t.Errorf("pair %d: expected term %q, got %q", i, pool[i].Term, pair.Term)
		}
		if q.Definitions[q.AnswerKey[i]] != pool[i].Definition {
			t.Errorf("pair %d: answer key does not point at the term's definition", i)
		}
	}
}

func TestBuildMatchQuestion_InsufficientPool(t *testing.T) {
	_, _, err := quiz.BuildMatchQuestion(makeTerms(3))
	if !errors.Is(err, quiz.ErrInsufficientPool) {
		t.Errorf("expected ErrInsufficientPool, got %v", err)
	}
}

func TestBuildMatchQuestions_DropsRemainder(t *testing.T) {
	questions := quiz.BuildMatchQuestions(makeTerms(10))
	if len(questions) != 2 {
		t.Errorf("expected 2 full rounds from 10 terms, got %d", len(questions))
	}
}
