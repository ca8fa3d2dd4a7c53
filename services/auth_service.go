package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rozeen-shrestha/confession/database"
	"github.com/rozeen-shrestha/confession/dto"
	"github.com/rozeen-shrestha/confession/models"
	"github.com/rozeen-shrestha/confession/utils"
	"go.uber.org/zap"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@confession.com"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	InsertIfAbsent(ctx context.Context, u *models.User) (bool, error)
}

type AuthOptions struct {
	Secret     []byte
	SessionTTL time.Duration
	BcryptCost int
}

type AuthService struct {
	users UserRepository
	opts  AuthOptions
	log   *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserRepository, opts AuthOptions, log *zap.Logger) *AuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = utils.DefaultBcryptCost
	}
	return &AuthService{users: users, opts: opts, log: log}
}

type LoginResult struct {
	User  dto.SessionUserDTO
	Token string
}

// Login checks the password and issues a session token. An unknown username
// and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		// compare anyway so unknown usernames take as long as known ones
		_ = utils.CheckPassword(s.dummy(), password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := utils.CheckPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	role := string(user.EffectiveRole())
	token, err := utils.GenerateSessionToken(s.opts.Secret, user.ID.Hex(), user.Username, role, s.opts.SessionTTL)
	if err != nil {
		return nil, err
	}
	s.log.Info("user logged in", zap.String("username", user.Username), zap.String("role", role))

	return &LoginResult{
		User:  dto.SessionUserDTO{ID: user.ID.Hex(), Username: user.Username, Role: role},
		Token: token,
	}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword(utils.GeneratePassword(), s.opts.BcryptCost)
	})
	return s.dummyHash
}

// SessionTTL is how long an issued token stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.opts.SessionTTL
}

// SeedAdmin creates an admin with a random password unless a user with the
// same username or email exists. The password is written to the log only.
func (s *AuthService) SeedAdmin(ctx context.Context, username, email string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = DefaultAdminUsername
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = DefaultAdminEmail
	}

	password := utils.GeneratePassword()
	hash, err := utils.HashPassword(password, s.opts.BcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.InsertIfAbsent(ctx, &models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return false, err
	}

	if !created {
		s.log.Info("admin user already exists", zap.String("username", username), zap.String("email", email))
		return false, nil
	}
	s.log.Info("admin user seeded",
		zap.String("username", username),
		zap.String("email", email),
		zap.String("password", password),
	)
	return true, nil
}
