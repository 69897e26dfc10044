package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService looks up admin accounts.
type UserService struct {
	store *store.Client
}

// NewUserService returns a UserService.
func NewUserService(client *store.Client) *UserService {
	return &UserService{store: client}
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*db.User, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	var user db.User
	if err := firstOr(gdb, &user, ErrUserNotFound, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies username and password. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	var user db.User
	if err := gdb.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
