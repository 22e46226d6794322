package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

const userColumns = `id, email, full_name, password_hash, password_salt, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateEmailUser(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	const query = `
		INSERT INTO user_account (email, password_hash, password_salt)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, passwordHash, passwordSalt)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertGoogleUser returns the existing account for the email or creates a
// passwordless one. An existing password hash is left untouched.
func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email string, fullName *string) (*domain.User, error) {
	const query = `
		INSERT INTO user_account (email, full_name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
		SET full_name = COALESCE(user_account.full_name, EXCLUDED.full_name),
		    updated_at = NOW()
		RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, fullName)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM user_account
		WHERE email = $1
	`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM user_account
		WHERE id = $1
	`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
		UPDATE user_account
		SET password_hash = $2,
		    password_salt = $3,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
		DELETE FROM user_account
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
