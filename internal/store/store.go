// Package store persists users, term groups, terms, and points.
package store

import (
	"context"
	"errors"

	"github.com/helix-study/backend/internal/domain/term"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrMissingID = errors.New("store: missing id")
)

// Store is the persistence boundary the quiz core depends on. Every
// operation is a single-record read or write; there are no multi-record
// transactions above the store.
type Store interface {
	CreateUser(ctx context.Context, u *term.User) error
	GetUser(ctx context.Context, id string) (*term.User, error)
	GetUserByUsername(ctx context.Context, username string) (*term.User, error)
	ListUsers(ctx context.Context) ([]*term.User, error)
	DeleteUser(ctx context.Context, id string) error

	CreateGroup(ctx context.Context, g *term.TermGroup) error
	GetGroup(ctx context.Context, id string) (*term.TermGroup, error)
	ListGroupsByUser(ctx context.Context, userID string) ([]*term.TermGroup, error)
	UpdateGroup(ctx context.Context, g *term.TermGroup) error
	DeleteGroup(ctx context.Context, id string) error

	CreateTerm(ctx context.Context, t *term.Term) error
	GetTerm(ctx context.Context, id string) (*term.Term, error)
	ListTermsByGroup(ctx context.Context, groupID string) ([]term.Term, error)
	UpdateTerm(ctx context.Context, t *term.Term) error
	DeleteTerm(ctx context.Context, id string) error

	CreatePoint(ctx context.Context, p *term.Point) error
	TotalPointsByUser(ctx context.Context, userID string) (int, error)

	Close() error
}
