// Package quiz drives a study session: it builds the working pool of
// terms for a group, presents questions through one of three game modes,
// grades answers, and keeps the session score.
package quiz

import (
	"math/rand"

	"github.com/helix-study/backend/internal/domain/term"
)

// choiceOptions is the number of definitions shown in a multiple-choice
// question and the number of pairs in one matching round.
const choiceOptions = 4

// BuildPool copies the group's terms into a uniformly shuffled working
// pool. A group with no terms cannot start a quiz and yields
// ErrEmptyGroup.
func BuildPool(terms []term.Term) ([]term.Term, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyGroup
	}

	pool := make([]term.Term, len(terms))
	copy(pool, terms)

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	return pool, nil
}

// ChoiceQuestion is one multiple-choice round: the term is shown and the
// user picks one of four definitions.
type ChoiceQuestion struct {
	TermID       string
	Term         string
	Options      [choiceOptions]string
	CorrectIndex int
}

// BuildChoiceQuestion places the target's definition at a uniformly
// random slot and fills the rest with three other definitions sampled
// from the pool without replacement. The target is excluded from the
// distractor candidates by definition text: the first pool entry whose
// definition equals the target's is skipped, further duplicates are not.
// Needs at least four terms in the pool, otherwise ErrInsufficientPool.
func BuildChoiceQuestion(target term.Term, pool []term.Term) (ChoiceQuestion, error) {
	if len(pool) < choiceOptions {
		return ChoiceQuestion{}, ErrInsufficientPool
	}

	candidates := make([]term.Term, 0, len(pool)-1)
	excluded := false
	for _, t := range pool {
		if !excluded && t.Definition == target.Definition {
			excluded = true
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) < choiceOptions-1 {
		return ChoiceQuestion{}, ErrInsufficientPool
	}

	q := ChoiceQuestion{
		TermID:       target.ID,
		Term:         target.Term,
		CorrectIndex: rand.Intn(choiceOptions),
	}
	q.Options[q.CorrectIndex] = target.Definition

	for i := 0; i < choiceOptions; i++ {
		if i == q.CorrectIndex {
			continue
		}
		k := rand.Intn(len(candidates))
		q.Options[i] = candidates[k].Definition
		candidates = append(candidates[:k], candidates[k+1:]...)
	}

	return q, nil
}

// MatchPair is one presented term in a matching round.
type MatchPair struct {
	TermID string
	Term   string
}

// MatchQuestion is one matching round: four terms on one side, the same
// four definitions shuffled on the other. AnswerKey[i] is the index into
// Definitions that holds the true definition of Terms[i].
type MatchQuestion struct {
	Terms       [choiceOptions]MatchPair
	Definitions [choiceOptions]string
	AnswerKey   [choiceOptions]int
}

// BuildMatchQuestion consumes four terms from the front of the pool and
// returns the round together with the remaining pool. Fewer than four
// terms left means no further round can be built: ErrInsufficientPool.
func BuildMatchQuestion(pool []term.Term) (MatchQuestion, []term.Term, error) {
	if len(pool) < choiceOptions {
		return MatchQuestion{}, pool, ErrInsufficientPool
	}

	var q MatchQuestion
	perm := rand.Perm(choiceOptions)
	for i := 0; i < choiceOptions; i++ {
		t := pool[i]
		q.Terms[i] = MatchPair{TermID: t.ID, Term: t.Term}
		q.Definitions[perm[i]] = t.Definition
		q.AnswerKey[i] = perm[i]
	}

	return q, pool[choiceOptions:], nil
}

// BuildMatchQuestions partitions the pool into consecutive rounds of
// four. A trailing remainder smaller than four is dropped.
func BuildMatchQuestions(pool []term.Term) []MatchQuestion {
	questions := make([]MatchQuestion, 0, len(pool)/choiceOptions)
	for len(pool) >= choiceOptions {
		q, rest, err := BuildMatchQuestion(pool)
		if err != nil {
			break
		}
		questions = append(questions, q)
		pool = rest
	}
	return questions
}
