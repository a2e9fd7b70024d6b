package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/helix-study/backend/internal/domain/term"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS term_groups (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS terms (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    term TEXT NOT NULL,
    definition TEXT NOT NULL,
    mastery_coef REAL NOT NULL DEFAULT 0,
    total_ans INTEGER NOT NULL DEFAULT 0,
    correct_ans INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (group_id) REFERENCES term_groups(id)
);

CREATE TABLE IF NOT EXISTS points (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    points INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);
`

// SQLStore implements Store over sqlx. The default driver is the
// pure-Go sqlite build; a postgres DSN selects lib/pq instead. Queries
// are written with ? placeholders and rebound per driver.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLite opens (or creates) a sqlite database at path. Use ":memory:"
// for a throwaway store in tests.
func NewSQLite(path string) (*SQLStore, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// NewPostgres connects to a postgres database with the given DSN.
func NewPostgres(dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Users
// ============================================================================

func (s *SQLStore) CreateUser(ctx context.Context, u *term.User) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO users (id, username) VALUES (?, ?)"),
		u.ID, u.Username,
	)
	return err
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*term.User, error) {
	var u term.User
	err := s.db.GetContext(ctx, &u,
		s.db.Rebind("SELECT id, username FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*term.User, error) {
	var u term.User
	err := s.db.GetContext(ctx, &u,
		s.db.Rebind("SELECT id, username FROM users WHERE username = ?"), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]*term.User, error) {
	var users []*term.User
	err := s.db.SelectContext(ctx, &users, "SELECT id, username FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user together with their groups, terms, and
// point records.
func (s *SQLStore) DeleteUser(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(
		"DELETE FROM terms WHERE group_id IN (SELECT id FROM term_groups WHERE user_id = ?)"), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM term_groups WHERE user_id = ?"), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM points WHERE user_id = ?"), id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM users WHERE id = ?"), id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

// ============================================================================
// Term groups
// ============================================================================

func (s *SQLStore) CreateGroup(ctx context.Context, g *term.TermGroup) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO term_groups (id, user_id, name) VALUES (?, ?, ?)"),
		g.ID, g.UserID, g.Name,
	)
	return err
}

func (s *SQLStore) GetGroup(ctx context.Context, id string) (*term.TermGroup, error) {
	var g term.TermGroup
	err := s.db.GetContext(ctx, &g,
		s.db.Rebind("SELECT id, user_id, name FROM term_groups WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *SQLStore) ListGroupsByUser(ctx context.Context, userID string) ([]*term.TermGroup, error) {
	var groups []*term.TermGroup
	err := s.db.SelectContext(ctx, &groups,
		s.db.Rebind("SELECT id, user_id, name FROM term_groups WHERE user_id = ? ORDER BY name"), userID)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *SQLStore) UpdateGroup(ctx context.Context, g *term.TermGroup) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE term_groups SET user_id = ?, name = ? WHERE id = ?"),
		g.UserID, g.Name, g.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteGroup removes a group and every term it owns.
func (s *SQLStore) DeleteGroup(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM terms WHERE group_id = ?"), id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM term_groups WHERE id = ?"), id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

// ============================================================================
// Terms
// ============================================================================

func (s *SQLStore) CreateTerm(ctx context.Context, t *term.Term) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind(`INSERT INTO terms (id, group_id, term, definition, mastery_coef, total_ans, correct_ans)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.GroupID, t.Term, t.Definition, t.MasteryCoef, t.TotalAns, t.CorrectAns,
	)
	return err
}

func (s *SQLStore) GetTerm(ctx context.Context, id string) (*term.Term, error) {
	var t term.Term
	err := s.db.GetContext(ctx, &t,
		s.db.Rebind(`SELECT id, group_id, term, definition, mastery_coef, total_ans, correct_ans
			FROM terms WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLStore) ListTermsByGroup(ctx context.Context, groupID string) ([]term.Term, error) {
	if groupID == "" {
		return nil, ErrMissingID
	}

	var terms []term.Term
	err := s.db.SelectContext(ctx, &terms,
		s.db.Rebind(`SELECT id, group_id, term, definition, mastery_coef, total_ans, correct_ans
			FROM terms WHERE group_id = ? ORDER BY term`), groupID)
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (s *SQLStore) UpdateTerm(ctx context.Context, t *term.Term) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE terms SET group_id = ?, term = ?, definition = ?,
			mastery_coef = ?, total_ans = ?, correct_ans = ? WHERE id = ?`),
		t.GroupID, t.Term, t.Definition, t.MasteryCoef, t.TotalAns, t.CorrectAns, t.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLStore) DeleteTerm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM terms WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ============================================================================
// Points
// ============================================================================

func (s *SQLStore) CreatePoint(ctx context.Context, p *term.Point) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO points (id, user_id, points) VALUES (?, ?, ?)"),
		p.ID, p.UserID, p.Points,
	)
	return err
}

// TotalPointsByUser sums all point records for a user. A user with no
// records has a total of zero.
func (s *SQLStore) TotalPointsByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := s.db.GetContext(ctx, &total,
		s.db.Rebind("SELECT COALESCE(SUM(points), 0) FROM points WHERE user_id = ?"), userID)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
