package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

const profileColumns = `user_id, full_name, business_name, phone, address, city, state, zip_code, country, avatar_url, bio, website, created_at, updated_at`

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepo(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	var profile domain.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the row on first write; afterwards non-nil fields overwrite
// and nil fields keep their stored values.
func (r *ProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, input domain.ProfileUpdate) (*domain.Profile, error) {
	const query = `
		INSERT INTO profiles (user_id, full_name, business_name, phone, address, city, state, zip_code, country, avatar_url, bio, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = COALESCE(EXCLUDED.full_name, profiles.full_name),
		    business_name = COALESCE(EXCLUDED.business_name, profiles.business_name),
		    phone = COALESCE(EXCLUDED.phone, profiles.phone),
		    address = COALESCE(EXCLUDED.address, profiles.address),
		    city = COALESCE(EXCLUDED.city, profiles.city),
		    state = COALESCE(EXCLUDED.state, profiles.state),
		    zip_code = COALESCE(EXCLUDED.zip_code, profiles.zip_code),
		    country = COALESCE(EXCLUDED.country, profiles.country),
		    avatar_url = COALESCE(EXCLUDED.avatar_url, profiles.avatar_url),
		    bio = COALESCE(EXCLUDED.bio, profiles.bio),
		    website = COALESCE(EXCLUDED.website, profiles.website),
		    updated_at = NOW()
		RETURNING ` + profileColumns

	row := r.db.QueryRowxContext(ctx, query, userID,
		input.FullName, input.BusinessName, input.Phone, input.Address, input.City,
		input.State, input.ZipCode, input.Country, input.AvatarURL, input.Bio, input.Website)

	var profile domain.Profile
	if err := row.StructScan(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)
