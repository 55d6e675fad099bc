package repository

import (
	"context"
	"errors"

	"portfolio-services/internal/infra"
	"portfolio-services/internal/infra/db"
	"portfolio-services/internal/usecase/commands"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*commands.AdminUser, error) {
	const sql = `SELECT id, email, password_hash FROM admin_users WHERE email = $1`

	var user commands.AdminUser
	err := r.db.QueryRow(ctx, sql, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("admin user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find admin user", err)
	}
	return &user, nil
}

func (r *UserRepository) Upsert(ctx context.Context, email, passwordHash string) error {
	const sql = `
		INSERT INTO admin_users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`

	if _, err := r.db.Exec(ctx, sql, email, passwordHash); err != nil {
		return infra.WrapRepoErr("failed to upsert admin user", err)
	}
	return nil
}
