package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/rype/internal/domain/model"
)

const userColumns = `id, name, email, password_hash, phone, address, role, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Address, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, name, email, password_hash, phone, address, role, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + userColumns
	user.ID = uuid.NewString()
	user.Email = strings.ToLower(user.Email)
	if user.Role == "" {
		user.Role = model.RoleCustomer
	}

	created, err := scanUser(r.storage.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Phone, user.Address, user.Role, user.CreatedAt))
	if err != nil {
		return nil, mapError("create user", err)
	}
	return created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		return nil, mapError("get user by email", err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get user", err)
	}
	return u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	const query = `UPDATE users SET
            name = COALESCE($2, name),
            phone = COALESCE($3, phone),
            address = COALESCE($4, address)
        WHERE id=$1 RETURNING ` + userColumns
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id, update.Name, update.Phone, update.Address))
	if err != nil {
		return nil, mapError("update profile", err)
	}
	return u, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	return count(ctx, r.storage.pool, "count users by role", `SELECT COUNT(*) FROM users WHERE role=$1`, role)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.storage.pool, "count users", `SELECT COUNT(*) FROM users`)
}
