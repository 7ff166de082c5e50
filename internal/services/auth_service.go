package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/config"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// IssueToken upserts the user (first registration creates a student) and
// returns a signed JWT carrying the email and stored role.
func (s *AuthServiceImpl) IssueToken(ctx context.Context, req *models.TokenRequest) (string, *models.User, error) {
	if req.Email == "" {
		return "", nil, apperrors.Validation("email is required")
	}

	user, err := s.userRepo.Upsert(ctx, &models.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin authenticates the bootstrap admin account with email+password.
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.Forbidden("invalid credentials")
		}
		return "", err
	}
	if user.Role != models.RoleAdmin || user.Password == "" {
		return "", apperrors.Forbidden("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", apperrors.Forbidden("invalid credentials")
	}
	return s.signToken(user)
}

// EnsureAdmin seeds the bootstrap admin account from configuration. A no-op
// when no admin credentials are configured or the account already exists.
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context) error {
	if s.cfg.Admin.Email == "" || s.cfg.Admin.Password == "" {
		return nil
	}

	if _, err := s.userRepo.FindByEmail(ctx, s.cfg.Admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:       s.cfg.Admin.Email,
		DisplayName: "Administrator",
		Role:        models.RoleAdmin,
		Password:    string(hash),
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		// A concurrent instance may have seeded it first.
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil
		}
		return err
	}
	slog.Info("Bootstrap admin account created", "email", admin.Email)
	return nil
}

func (s *AuthServiceImpl) signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}
