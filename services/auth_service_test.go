package services

import (
	"context"
	"testing"
	"time"

	"github.com/rozeen-shrestha/confession/database/memstore"
	"github.com/rozeen-shrestha/confession/models"
	"github.com/rozeen-shrestha/confession/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

var secret = []byte("test-secret-at-least-16-chars!!")

func newAuth(t *testing.T, users ...models.User) (*AuthService, *memstore.Users) {
	t.Helper()
	repo := memstore.NewUsers(users...)
	svc := NewAuthService(repo, AuthOptions{Secret: secret, SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost}, zap.NewNop())
	return svc, repo
}

func userWithPassword(t *testing.T, username, password string, role models.Role) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{Username: username, Email: username + "@example.com", Password: hash, Role: role}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuth(t, userWithPassword(t, "admin", "s3cret", models.RoleAdmin))

	res, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Username)
	assert.Equal(t, "admin", res.User.Role)
	assert.NotEmpty(t, res.User.ID)

	claims, err := utils.ValidateToken(res.Token, secret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_RoleDefaultsToUser(t *testing.T) {
	svc, _ := newAuth(t, userWithPassword(t, "plain", "pw", ""))

	res, err := svc.Login(context.Background(), "plain", "pw")
	require.NoError(t, err)
	assert.Equal(t, "user", res.User.Role)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newAuth(t, userWithPassword(t, "admin", "s3cret", models.RoleAdmin))

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeedAdmin_CreatedThenExists(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	repo := memstore.NewUsers()
	svc := NewAuthService(repo, AuthOptions{Secret: secret, SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost}, zap.New(core))

	created, err := svc.SeedAdmin(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedAdmin(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := repo.FindByUsername(context.Background(), DefaultAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminEmail, u.Email)
	assert.Equal(t, models.RoleAdmin, u.Role)

	seeded := logs.FilterMessage("admin user seeded").All()
	require.Len(t, seeded, 1)
	password := seeded[0].ContextMap()["password"].(string)
	assert.Len(t, password, 12)
	assert.NoError(t, utils.CheckPassword(u.Password, password))

	// the logged password works for login
	res, err := svc.Login(context.Background(), DefaultAdminUsername, password)
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Role)
}

func TestSeedAdmin_EmailCollision(t *testing.T) {
	svc, _ := newAuth(t, models.User{Username: "someone", Email: "boss@example.com"})

	created, err := svc.SeedAdmin(context.Background(), "boss", " boss@example.com ")
	require.NoError(t, err)
	assert.False(t, created)

	// emails are compared exactly
	created, err = svc.SeedAdmin(context.Background(), "boss", "Boss@Example.com")
	require.NoError(t, err)
	assert.True(t, created)
}
