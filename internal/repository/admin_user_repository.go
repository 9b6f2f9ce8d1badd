package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/visapath/content-service/internal/model"
)

// AdminUserRepo manages back-office accounts.  There is no self-service
// registration; accounts come from the bootstrap step in main or from
// operators inserting rows directly.
type AdminUserRepo struct {
	db *sql.DB
}

func NewAdminUserRepo(db *sql.DB) *AdminUserRepo {
	return &AdminUserRepo{db: db}
}

func (r *AdminUserRepo) Create(ctx context.Context, u *model.AdminUser) error {
	const q = `INSERT INTO admin_users (id, email, password_hash, role, created_at)
               VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
	return err
}

func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	const q = `SELECT id, email, password_hash, role, created_at FROM admin_users WHERE email = ?`
	var u model.AdminUser
	err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminUserRepo) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	const q = `SELECT id, email, password_hash, role, created_at FROM admin_users WHERE id = ?`
	var u model.AdminUser
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
