package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/invtrack/inventory-manager/internal/gerr"
)

type userStore struct {
	*PGStore
}

// Users returns an object implementing user account operations.
func (ps *PGStore) Users() dependency.Users {
	return &userStore{PGStore: ps}
}

func (ps *PGStore) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	u, err := QueryNamedOne[entity.User](ctx, ps.DB(), `
	SELECT id, username, contact_info, password_hash, role
	FROM users
	WHERE username = :username`, map[string]any{"username": username})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get user by username: %w", err)
	}
	return &u, nil
}

func (ps *PGStore) AddUser(ctx context.Context, username, contactInfo, role, pwHash string) error {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	err := ExecNamed(ctx, ps.DB(), `
	INSERT INTO users (username, contact_info, password_hash, role)
	VALUES (:username, :contactInfo, :passwordHash, :role)
	ON CONFLICT (username)
	DO UPDATE SET contact_info = :contactInfo, password_hash = :passwordHash, role = :role`,
		map[string]any{
			"username":     username,
			"contactInfo":  contactInfo,
			"passwordHash": pwHash,
			"role":         role,
		})
	if err != nil {
		return fmt.Errorf("can't upsert user: %w", err)
	}
	return nil
}

func (ps *PGStore) DeleteUser(ctx context.Context, username string) error {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	affected, err := ExecNamedAffected(ctx, ps.DB(),
		`DELETE FROM users WHERE username = :username`,
		map[string]any{"username": username})
	if err != nil {
		return fmt.Errorf("can't delete user: %w", err)
	}
	if affected == 0 {
		return gerr.ErrNotFound
	}
	return nil
}
