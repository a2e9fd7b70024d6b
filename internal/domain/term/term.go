// Package term holds the core study entities: users, term groups, the
// terms themselves, and the points earned by answering them.
package term

import (
	"errors"

	"github.com/helix-study/backend/internal/id"
)

// User identifies whose groups and score are operated on.
type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
}

// TermGroup is a named collection of terms belonging to one user
// (a "deck" or "category").
type TermGroup struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
}

// Term is a single vocabulary entry, the unit of quizzing. Answer
// statistics live on the term and are mutated only through RecordAnswer.
type Term struct {
	ID          string  `db:"id"`
	GroupID     string  `db:"group_id"`
	Term        string  `db:"term"`
	Definition  string  `db:"definition"`
	MasteryCoef float64 `db:"mastery_coef"`
	TotalAns    int     `db:"total_ans"`
	CorrectAns  int     `db:"correct_ans"`
}

// Point is one score record for a user. A user's cumulative score is the
// sum of all their point records.
type Point struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Points int    `db:"points"`
}

func NewUser(username string) (*User, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	return &User{ID: id.New(), Username: username}, nil
}

func NewGroup(userID, name string) (*TermGroup, error) {
	if name == "" {
		return nil, errors.New("group name cannot be empty")
	}
	return &TermGroup{ID: id.New(), UserID: userID, Name: name}, nil
}

func NewTerm(groupID, word, definition string) (*Term, error) {
	if word == "" {
		return nil, errors.New("term cannot be empty")
	}
	if definition == "" {
		return nil, errors.New("definition cannot be empty")
	}
	return &Term{
		ID:         id.New(),
		GroupID:    groupID,
		Term:       word,
		Definition: definition,
	}, nil
}

func NewPoint(userID string, points int) *Point {
	return &Point{ID: id.New(), UserID: userID, Points: points}
}

// RecordAnswer folds one graded answer into the term's running
// statistics. TotalAns grows by one per call, CorrectAns only when the
// answer was correct, and MasteryCoef is kept equal to
// CorrectAns/TotalAns. Persistence is the caller's responsibility.
func (t *Term) RecordAnswer(correct bool) {
	t.TotalAns++
	if correct {
		t.CorrectAns++
	}
	t.MasteryCoef = float64(t.CorrectAns) / float64(t.TotalAns)
}
