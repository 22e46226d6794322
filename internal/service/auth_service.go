package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/util"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidGoogleToken  = errors.New("invalid google token")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidResetCode    = errors.New("invalid or expired reset code")
	ErrPasswordLoginNotSet = errors.New("account has no password; use google sign-in or reset the password")
)

// ResetMailer delivers the one-time reset code to the user.
type ResetMailer interface {
	SendPasswordResetOTP(ctx context.Context, email, otp string, expiresAt time.Time) error
}

type AuthServiceConfig struct {
	SessionTTL       time.Duration
	PasswordResetTTL time.Duration
	OTPLength        int
	GoogleAudience   string
}

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	resets   ports.PasswordResetRepository
	jwt      *util.JWTManager
	mailer   ResetMailer
	cfg      AuthServiceConfig
	now      func() time.Time

	// validateGoogleToken is swapped out in tests.
	validateGoogleToken func(ctx context.Context, idToken, audience string) (email string, name string, err error)
}

type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, resets ports.PasswordResetRepository, jwt *util.JWTManager, mailer ResetMailer, cfg AuthServiceConfig) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.PasswordResetTTL <= 0 {
		cfg.PasswordResetTTL = 15 * time.Minute
	}
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}
	return &AuthService{
		users:               users,
		sessions:            sessions,
		resets:              resets,
		jwt:                 jwt,
		mailer:              mailer,
		cfg:                 cfg,
		now:                 time.Now,
		validateGoogleToken: validateGoogleIDToken,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateEmailUser(ctx, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() {
		return nil, ErrPasswordLoginNotSet
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	email, name, err := s.validateGoogleToken(ctx, idToken, s.cfg.GoogleAudience)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.users.UpsertGoogleUser(ctx, email, stringPtr(name))
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeactivateSession(ctx, token); err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	return nil
}

// RequestPasswordReset issues a one-time code and mails it. An unknown email
// is reported as ErrUserNotFound; callers may choose not to reveal that.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	otp, err := util.GenerateNumericOTP(s.cfg.OTPLength)
	if err != nil {
		return err
	}
	hash, salt, err := util.DerivePassword(otp)
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.cfg.PasswordResetTTL)
	if _, err := s.resets.Create(ctx, user.ID, hash, salt, expiresAt); err != nil {
		return err
	}
	return s.mailer.SendPasswordResetOTP(ctx, user.Email, otp, expiresAt)
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, otp, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidResetCode
		}
		return err
	}

	reset, err := s.resets.FindLatestByUser(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidResetCode
		}
		return err
	}
	if !reset.Usable(s.now()) {
		return ErrInvalidResetCode
	}
	if !util.VerifyPassword(otp, reset.OTPSalt, reset.OTPHash) {
		return ErrInvalidResetCode
	}

	if err := s.resets.MarkUsed(ctx, reset.ID); err != nil {
		return err
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash, salt)
}

// Authenticate resolves a bearer token to its user. The token must carry a
// valid signature and belong to a session that is still active.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}
	if _, err := s.sessions.FindActiveSession(ctx, token); err != nil {
		if isNotFound(err) {
			return nil, errors.New("session expired")
		}
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func validateGoogleIDToken(ctx context.Context, idToken, audience string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, idToken, audience)
	if err != nil {
		return "", "", err
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	return email, name, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
