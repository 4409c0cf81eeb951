package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

const userColumns = `id, username, email, password, role`

// CreateUser inserts a user whose password is already hashed.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string, role models.Role) (*models.User, error) {
	var exists int
	err := s.DB.GetContext(ctx, &exists, s.DB.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists > 0 {
		return nil, apperr.DuplicateEmail()
	}

	u := &models.User{Username: username, Email: email, PasswordHash: passwordHash, Role: role}
	query := s.DB.Rebind(`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := s.DB.QueryRowxContext(ctx, query, username, email, passwordHash, role).Scan(&u.ID); err != nil {
		// a concurrent registration can still win the race past the pre-check
		if col, ok := uniqueViolation(err); ok {
			if strings.Contains(col, "email") {
				return nil, apperr.DuplicateEmail()
			}
			if strings.Contains(col, "username") {
				return nil, apperr.DuplicateUsername()
			}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	if err := s.DB.GetContext(ctx, &u, s.DB.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user together with their products and orders.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectAffected(res, "User")
}

func expectAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound(entity)
	}
	return nil
}
