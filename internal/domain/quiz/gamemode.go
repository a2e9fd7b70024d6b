package quiz

import (
	"math/rand"
	"strings"

	"github.com/helix-study/backend/internal/domain/term"
)

// Mode names a question-presentation strategy.
type Mode string

const (
	ModeWrite  Mode = "write"  // definition shown, term typed in
	ModeChoice Mode = "choice" // term shown, one of four definitions picked
	ModeMatch  Mode = "match"  // four terms matched to four definitions
)

// Question is what a game mode hands out for one round. Exactly one of
// the payload fields is set, the one named by Mode.
type Question struct {
	Mode   Mode
	Write  *WriteQuestion
	Choice *ChoiceQuestion
	Match  *MatchQuestion
}

// WriteQuestion shows the definition and expects the term written back.
type WriteQuestion struct {
	TermID     string
	Definition string
	Term       string
}

// Answer carries the user's input for one question. Only the field for
// the question's mode is read.
type Answer struct {
	Text        string             // write mode
	ChoiceIndex int                // choice mode
	Matches     [choiceOptions]int // match mode: chosen definition index per presented term
}

// GameMode is the shared contract of the three strategies. SetTerms
// loads the working pool, NextQuestion hands out rounds until the pool
// is exhausted, Grade returns the number of correctly answered pairs in
// the round (0 or 1 except for matching).
type GameMode interface {
	SetTerms(pool []term.Term)
	NextQuestion() (Question, error)
	Grade(q Question, a Answer) (int, error)
	Remaining() int
}

// NewGameMode returns the strategy for the given mode name.
func NewGameMode(m Mode) (GameMode, error) {
	switch m {
	case ModeWrite:
		return &WriteMode{}, nil
	case ModeChoice:
		return &ChoiceMode{}, nil
	case ModeMatch:
		return &MatchMode{}, nil
	default:
		return nil, ErrUnknownMode
	}
}

// AnswersMatch reports whether a user's answer matches the expected one.
// Comparison ignores letter case and leading/trailing whitespace. Both
// the write mode and the session's CheckAnswer use this single routine.
func AnswersMatch(got, want string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

// WriteMode presents definitions one at a time, in uniformly random
// order without repeats, and grades typed-in terms.
type WriteMode struct {
	remaining []term.Term
	loaded    bool
}

func (m *WriteMode) SetTerms(pool []term.Term) {
	m.remaining = make([]term.Term, len(pool))
	copy(m.remaining, pool)
	m.loaded = true
}

func (m *WriteMode) NextQuestion() (Question, error) {
	if !m.loaded {
		return Question{}, ErrTermsNotSet
	}
	if len(m.remaining) == 0 {
		return Question{}, ErrPoolExhausted
	}

	k := rand.Intn(len(m.remaining))
	t := m.remaining[k]
	m.remaining = append(m.remaining[:k], m.remaining[k+1:]...)

	return Question{
		Mode: ModeWrite,
		Write: &WriteQuestion{
			TermID:     t.ID,
			Definition: t.Definition,
			Term:       t.Term,
		},
	}, nil
}

func (m *WriteMode) Grade(q Question, a Answer) (int, error) {
	if q.Write == nil {
		return 0, ErrUnknownMode
	}
	if AnswersMatch(a.Text, q.Write.Term) {
		return 1, nil
	}
	return 0, nil
}

func (m *WriteMode) Remaining() int {
	return len(m.remaining)
}

// ChoiceMode presents each term once, in pool order, with four candidate
// definitions drawn from the whole pool.
type ChoiceMode struct {
	pool   []term.Term
	queue  []term.Term
	loaded bool
}

func (m *ChoiceMode) SetTerms(pool []term.Term) {
	m.pool = make([]term.Term, len(pool))
	copy(m.pool, pool)
	m.queue = make([]term.Term, len(pool))
	copy(m.queue, pool)
	m.loaded = true
}

func (m *ChoiceMode) NextQuestion() (Question, error) {
	if !m.loaded {
		return Question{}, ErrTermsNotSet
	}
	if len(m.queue) == 0 {
		return Question{}, ErrPoolExhausted
	}

	target := m.queue[0]
	q, err := BuildChoiceQuestion(target, m.pool)
	if err != nil {
		return Question{}, err
	}
	m.queue = m.queue[1:]

	return Question{Mode: ModeChoice, Choice: &q}, nil
}

func (m *ChoiceMode) Grade(q Question, a Answer) (int, error) {
	if q.Choice == nil {
		return 0, ErrUnknownMode
	}
	if a.ChoiceIndex == q.Choice.CorrectIndex {
		return 1, nil
	}
	return 0, nil
}

func (m *ChoiceMode) Remaining() int {
	return len(m.queue)
}

// MatchMode presents rounds of four terms with their definitions
// shuffled. A trailing remainder smaller than four is dropped. Grading
// is per pair, not all-or-nothing.
type MatchMode struct {
	queue  []term.Term
	loaded bool
}

func (m *MatchMode) SetTerms(pool []term.Term) {
	m.queue = make([]term.Term, len(pool))
	copy(m.queue, pool)
	m.loaded = true
}

func (m *MatchMode) NextQuestion() (Question, error) {
	if !m.loaded {
		return Question{}, ErrTermsNotSet
	}
	if len(m.queue) < choiceOptions {
		return Question{}, ErrPoolExhausted
	}

	q, rest, err := BuildMatchQuestion(m.queue)
	if err != nil {
		return Question{}, err
	}
	m.queue = rest

	return Question{Mode: ModeMatch, Match: &q}, nil
}

func (m *MatchMode) Grade(q Question, a Answer) (int, error) {
	if q.Match == nil {
		return 0, ErrUnknownMode
	}
	correct := 0
	for i := 0; i < choiceOptions; i++ {
		if a.Matches[i] == q.Match.AnswerKey[i] {
			correct++
		}
	}
	return correct, nil
}

func (m *MatchMode) Remaining() int {
	return len(m.queue) / choiceOptions
}
