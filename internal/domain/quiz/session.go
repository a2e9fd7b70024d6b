package quiz

import (
	"context"
	"fmt"

	"github.com/helix-study/backend/internal/domain/term"
	"github.com/helix-study/backend/internal/store"
)

// Session drives one study run: the active user, the group being
// studied, the chosen game mode, and the score earned so far. The store
// is injected by the caller; the session never opens its own.
//
// A session is single-threaded. Nothing in it persists except through
// the explicit mastery updates and the final score fold.
type Session struct {
	store store.Store

	user  *term.User
	group *term.TermGroup
	mode  GameMode
	score int
}

func NewSession(s store.Store) *Session {
	return &Session{store: s}
}

// SetActiveUser resolves the username and makes that user the session's
// active user. An unknown username surfaces as store.ErrNotFound.
func (s *Session) SetActiveUser(ctx context.Context, username string) error {
	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("resolve user %q: %w", username, err)
	}
	s.user = u
	return nil
}

func (s *Session) SetTermGroup(g *term.TermGroup) {
	s.group = g
}

func (s *Session) SetGameMode(m GameMode) {
	s.mode = m
}

func (s *Session) ActiveUser() *term.User {
	return s.user
}

func (s *Session) TermGroup() *term.TermGroup {
	return s.group
}

func (s *Session) GameMode() GameMode {
	return s.mode
}

// Score is the number of points earned in this session so far.
func (s *Session) Score() int {
	return s.score
}

// Terms fetches the terms of the session's group.
func (s *Session) Terms(ctx context.Context) ([]term.Term, error) {
	if s.group == nil {
		return nil, ErrNoTermGroup
	}
	terms, err := s.store.ListTermsByGroup(ctx, s.group.ID)
	if err != nil {
		return nil, fmt.Errorf("load terms for group %q: %w", s.group.ID, err)
	}
	return terms, nil
}

// Start builds the shuffled pool for the session's group and loads it
// into the game mode, resetting the session score.
func (s *Session) Start(ctx context.Context) error {
	if s.mode == nil {
		return ErrNoGameMode
	}
	terms, err := s.Terms(ctx)
	if err != nil {
		return err
	}
	pool, err := BuildPool(terms)
	if err != nil {
		return err
	}
	s.mode.SetTerms(pool)
	s.score = 0
	return nil
}

// NextQuestion hands out the next round from the active game mode.
func (s *Session) NextQuestion() (Question, error) {
	if s.mode == nil {
		return Question{}, ErrNoGameMode
	}
	return s.mode.NextQuestion()
}

// CheckAnswer compares a free-form answer against the expected one,
// ignoring case and surrounding whitespace.
func (s *Session) CheckAnswer(got, want string) bool {
	return AnswersMatch(got, want)
}

// SubmitAnswer grades the round, persists a mastery update for every
// term it covered, and adds the earned points to the session score.
// It returns the points earned in this round.
func (s *Session) SubmitAnswer(ctx context.Context, q Question, a Answer) (int, error) {
	if s.mode == nil {
		return 0, ErrNoGameMode
	}

	earned, err := s.mode.Grade(q, a)
	if err != nil {
		return 0, err
	}

	switch q.Mode {
	case ModeWrite:
		if err := s.recordAnswer(ctx, q.Write.TermID, earned > 0); err != nil {
			return 0, err
		}
	case ModeChoice:
		if err := s.recordAnswer(ctx, q.Choice.TermID, earned > 0); err != nil {
			return 0, err
		}
	case ModeMatch:
		for i, pair := range q.Match.Terms {
			if err := s.recordAnswer(ctx, pair.TermID, a.Matches[i] == q.Match.AnswerKey[i]); err != nil {
				return 0, err
			}
		}
	}

	s.score += earned
	return earned, nil
}

// UpdateMastery folds one graded answer into the term's statistics and
// persists the term.
func (s *Session) UpdateMastery(ctx context.Context, t *term.Term, correct bool) error {
	t.RecordAnswer(correct)
	if err := s.store.UpdateTerm(ctx, t); err != nil {
		return fmt.Errorf("persist mastery for term %q: %w", t.ID, err)
	}
	return nil
}

func (s *Session) recordAnswer(ctx context.Context, termID string, correct bool) error {
	t, err := s.store.GetTerm(ctx, termID)
	if err != nil {
		return fmt.Errorf("load term %q: %w", termID, err)
	}
	return s.UpdateMastery(ctx, t, correct)
}

// AddPoints persists a point record for the active user.
func (s *Session) AddPoints(ctx context.Context, amount int) error {
	if s.user == nil {
		return ErrNoActiveUser
	}
	p := term.NewPoint(s.user.ID, amount)
	if err := s.store.CreatePoint(ctx, p); err != nil {
		return fmt.Errorf("persist points for user %q: %w", s.user.ID, err)
	}
	return nil
}

// TotalScore is the user's cumulative score across all sessions.
func (s *Session) TotalScore(ctx context.Context) (int, error) {
	if s.user == nil {
		return 0, ErrNoActiveUser
	}
	return s.store.TotalPointsByUser(ctx, s.user.ID)
}

// Finish folds the session score into the user's persisted total and
// returns the new cumulative score. A session with no points earned
// writes nothing.
func (s *Session) Finish(ctx context.Context) (int, error) {
	if s.user == nil {
		return 0, ErrNoActiveUser
	}
	if s.score != 0 {
		if err := s.AddPoints(ctx, s.score); err != nil {
			return 0, err
		}
	}
	return s.TotalScore(ctx)
}

// Reset returns the session to its freshly constructed state: no active
// user, no group, no mode, zero score. Safe to call repeatedly.
func (s *Session) Reset() {
	s.user = nil
	s.group = nil
	s.mode = nil
	s.score = 0
}
