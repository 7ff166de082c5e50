package services

import (
	"context"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/config"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeUserRepository stores users in memory keyed by email.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

var _ repositories.UserRepository = (*fakeUserRepository)(nil)

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*models.User)}
}

func (r *fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return apperrors.Conflict("user already exists")
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *fakeUserRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.Email]
	if !ok {
		stored := *user
		stored.ID = primitive.NewObjectID()
		stored.Role = models.RoleStudent
		r.users[user.Email] = &stored
		out := stored
		return &out, nil
	}
	existing.DisplayName = user.DisplayName
	existing.PhotoURL = user.PhotoURL
	out := *existing
	return &out, nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepository) FindAll(ctx context.Context, page, limit int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.User
	for _, user := range r.users {
		found := *user
		out = append(out, &found)
	}
	return out, nil
}

func (r *fakeUserRepository) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			user.Role = role
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, user := range r.users {
		if user.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
		Admin: config.AdminConfig{
			Email:    "admin@example.com",
			Password: "admin-password",
		},
	}
}

func TestIssueTokenRegistersStudent(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	token, user, err := service.IssueToken(ctx, &models.TokenRequest{
		Email:       "student@example.com",
		DisplayName: "Student",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "student@example.com", claims["email"])
	assert.Equal(t, models.RoleStudent, claims["role"])
}

func TestIssueTokenKeepsExistingRole(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	_, user, err := service.IssueToken(ctx, &models.TokenRequest{Email: "mod@example.com"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateRole(ctx, user.ID, models.RoleModerator))

	_, user, err = service.IssueToken(ctx, &models.TokenRequest{Email: "mod@example.com", DisplayName: "Mod"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
	assert.Equal(t, "Mod", user.DisplayName)
}

func TestAdminLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	require.NoError(t, service.EnsureAdmin(ctx))

	_, err := service.AdminLogin(ctx, &models.AdminLoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	token, err := service.AdminLogin(ctx, &models.AdminLoginRequest{Email: "admin@example.com", Password: "admin-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	_, _, err := service.IssueToken(ctx, &models.TokenRequest{Email: "student@example.com"})
	require.NoError(t, err)

	_, err = service.AdminLogin(ctx, &models.AdminLoginRequest{Email: "student@example.com", Password: "anything"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestEnsureAdminIdempotent(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	require.NoError(t, service.EnsureAdmin(ctx))
	require.NoError(t, service.EnsureAdmin(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
