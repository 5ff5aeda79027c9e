package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ideaprism/mafia-growth-academy/internal/models"
	"github.com/ideaprism/mafia-growth-academy/internal/store"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNameRequired      = errors.New("display name is required")
	ErrGroupRequired     = errors.New("group name is required")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidRole       = errors.New("invalid role")
)

type UserServiceInterface interface {
	Login(ctx context.Context, name, group string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) *models.User
	List(ctx context.Context) []models.User
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AdminUpsert(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserService struct {
	store *store.Store
	now   func() time.Time
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st, now: time.Now}
}

// Login finds the user with the exact (name, group) pair, creating one
// on first login, and installs it as the current session user. There is
// no credential beyond the pair itself.
func (s *UserService) Login(ctx context.Context, name, group string) (*models.User, error) {
	name = strings.TrimSpace(name)
	group = strings.TrimSpace(group)
	if name == "" {
		return nil, ErrNameRequired
	}
	if group == "" {
		return nil, ErrGroupRequired
	}

	user := s.store.FindUserByNameAndGroup(ctx, name, group)
	if user == nil {
		user = &models.User{
			ID:        uuid.New(),
			Name:      name,
			Group:     group,
			Role:      models.RoleMember,
			CreatedAt: s.now().UTC(),
		}
		if err := s.store.UpsertUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
	}

	if err := s.store.SetCurrentUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("setting session user: %w", err)
	}
	return user, nil
}

func (s *UserService) Logout(ctx context.Context) error {
	return s.store.ClearCurrentUser(ctx)
}

// Current reads the single-slot session pointer; nil when signed out.
func (s *UserService) Current(ctx context.Context) *models.User {
	return s.store.CurrentUser(ctx)
}

func (s *UserService) List(ctx context.Context) []models.User {
	return s.store.Users(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := s.store.FindUserByID(ctx, id)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// AdminUpsert creates a member or admin from the management screens.
// Existing (name, group) pairs are rejected rather than merged.
func (s *UserService) AdminUpsert(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	name := strings.TrimSpace(params.Name)
	group := strings.TrimSpace(params.Group)
	if name == "" {
		return nil, ErrNameRequired
	}
	if group == "" {
		return nil, ErrGroupRequired
	}
	role := params.Role
	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleMember && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	if existing := s.store.FindUserByNameAndGroup(ctx, name, group); existing != nil {
		return nil, ErrUserAlreadyExists
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      name,
		Group:     group,
		Email:     strings.TrimSpace(params.Email),
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.UpsertUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.store.FindUserByID(ctx, id) == nil {
		return ErrUserNotFound
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// EnsureAdmin bootstraps an admin account at startup so the management
// screens are reachable on a fresh install. Existing users are promoted
// rather than duplicated.
func (s *UserService) EnsureAdmin(ctx context.Context, name, group string) (*models.User, error) {
	name = strings.TrimSpace(name)
	group = strings.TrimSpace(group)
	if name == "" || group == "" {
		return nil, nil
	}

	user := s.store.FindUserByNameAndGroup(ctx, name, group)
	if user == nil {
		user = &models.User{
			ID:        uuid.New(),
			Name:      name,
			Group:     group,
			CreatedAt: s.now().UTC(),
		}
	}
	if user.Role == models.RoleAdmin {
		return user, nil
	}
	user.Role = models.RoleAdmin
	if err := s.store.UpsertUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("bootstrapping admin: %w", err)
	}
	return user, nil
}
