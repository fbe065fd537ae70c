package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/config"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/core/services"
	"starwash-api/internal/pkg/password"
)

type fakeUserRepo struct {
	nextID uint
	users  map[string]*models.User // username -> user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.nextID++
	user.ID = r.nextID + 100
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, id uint) error           { return nil }

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

type fakeSessionRepo struct {
	created       []*models.AuthSession
	revoked       []string
	expiredSweeps int
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.AuthSession) error {
	r.created = append(r.created, session)
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.AuthSession, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	r.revoked = append(r.revoked, tokenHash)
	return nil
}

func (r *fakeSessionRepo) RevokeAllByUserID(_ context.Context, userID uint) error { return nil }

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error {
	r.expiredSweeps++
	return nil
}

func newAuthFixture(t *testing.T) (*services.AuthService, *fakeUserRepo, *fakeSessionRepo) {
	t.Helper()

	hashed, err := password.Hash("secret123")
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*models.User{
		"maria": {ID: 1, Username: "maria", FullName: "Maria Santos", Password: hashed, Role: "admin", IsActive: true},
		"juan":  {ID: 2, Username: "juan", Password: hashed, Role: "STAFF", IsActive: false},
		"odd":   {ID: 3, Username: "odd", Password: hashed, Role: "OWNER", IsActive: true},
	}}
	sessions := &fakeSessionRepo{}
	cfg := &config.Config{}
	cfg.JWT.Secret = "auth-test-secret"
	cfg.JWT.TokenHours = 1

	return services.NewAuthService(users, sessions, cfg), users, sessions
}

func TestAuthService_Login(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &services.LoginInput{
		Username: "maria", Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ADMIN", resp.User.Role, "legacy lowercase role comes back normalized")

	claims, err := svc.ValidateAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)

	require.Len(t, sessions.created, 1, "issued token is tracked for revocation")
	assert.Equal(t, password.HashToken(resp.Token), sessions.created[0].TokenHash)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	tests := []struct {
		name     string
		username string
		pass     string
		want     error
	}{
		{name: "unknown user", username: "ghost", pass: "secret123", want: services.ErrInvalidCredentials},
		{name: "wrong password", username: "maria", pass: "nope", want: services.ErrInvalidCredentials},
		{name: "inactive user", username: "juan", pass: "secret123", want: services.ErrUserInactive},
		{name: "role outside the closed set", username: "odd", pass: "secret123", want: domain.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &services.LoginInput{
				Username: tt.username, Password: tt.pass,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, err := svc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, "ADMIN", user.Role)

	_, err = svc.Me(context.Background(), 2)
	assert.ErrorIs(t, err, services.ErrUserInactive)

	_, err = svc.Me(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions := newAuthFixture(t)

	require.NoError(t, svc.Logout(context.Background(), "some-token"))
	require.Len(t, sessions.revoked, 1)
	assert.Equal(t, password.HashToken("some-token"), sessions.revoked[0])
}
