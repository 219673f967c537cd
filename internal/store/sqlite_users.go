package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/trigtutor/backend/internal/domain/user"
)

const userColumns = `id, name, email, password, role,
    total_prompts, correct_answers, wrong_answers, total_time_seconds,
    COALESCE(most_topic, '') AS most_topic`

// ============================================================================
// Users
// ============================================================================

// CreateUser inserts u and sets its ID. A taken email yields ErrDuplicate.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *user.User) error {
	role := u.Role
	if role == "" {
		role = user.RoleStudent
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)",
		u.Name, u.Email, u.PasswordHash, string(role),
	)
	if err != nil {
		return classify(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	u.Role = role
	return nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	err := s.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := s.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE email = ?", user.NormalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns every user, busiest first.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]user.User, error) {
	users := []user.User{}
	err := s.db.SelectContext(ctx, &users,
		"SELECT "+userColumns+" FROM users ORDER BY total_prompts DESC, id ASC",
	)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListRankedUsers returns up to limit users that have at least one prompt,
// ordered by accuracy then volume.
func (s *SQLiteStore) ListRankedUsers(ctx context.Context, limit int) ([]user.User, error) {
	users := []user.User{}
	err := s.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		WHERE total_prompts > 0
		ORDER BY (correct_answers * 1.0 / total_prompts) DESC, total_prompts DESC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return users, nil
}
