package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conduitapp/conduit-server/internal/auth"
	"github.com/conduitapp/conduit-server/internal/domain"
	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
	"github.com/conduitapp/conduit-server/internal/id"
	"github.com/conduitapp/conduit-server/internal/store"
	"github.com/conduitapp/conduit-server/internal/validation"
)

// UserService handles account registration, authentication and profile
// updates for the current user.
type UserService struct {
	store        *store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	store *store.Store,
	tokenService *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		store:        store,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// RegisterRequest contains new account data.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=4,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest contains account credentials.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserRequest contains a partial account update. Only fields that are
// present and non-empty are applied.
type UpdateUserRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,alphanum,min=4,max=32"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Bio      string `json:"bio"`
	Image    string `json:"image"    validate:"omitempty,url"`
}

// Register creates a new account and returns its projection with a fresh
// token. Email and username uniqueness are pre-checked for distinct error
// messages; the store's unique indexes remain the authoritative guard.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domainerrors.Conflict("Email already exists")
	} else if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, domainerrors.Conflict("Username already exists")
	} else if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Record:       domain.Record{ID: userID},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Image:        domain.DefaultUserImage,
	}
	user.InitTimestamps()

	if err := s.store.Users.Create(ctx, userID, user); err != nil {
		if conflictErr := mapUserIndexConflict(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User registered", "user_id", userID, "username", user.Username)
	}

	return s.projectUser(user)
}

// Login authenticates by email and password. An unknown email and a wrong
// password fail differently on the wire (404 vs 401), matching the public
// contract.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return nil, domainerrors.InvalidCredentials("email or password is incorrect")
	}

	return s.projectUser(user)
}

// GetCurrent returns the projection of the viewer's own account.
func (s *UserService) GetCurrent(ctx context.Context, viewer domain.Viewer) (*UserResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, viewer.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return s.projectUser(user)
}

// Update applies a partial update to the viewer's account. The password is
// re-hashed when present.
func (s *UserService) Update(ctx context.Context, viewer domain.Viewer, req UpdateUserRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, viewer.Email)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Password != "" {
		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Image != "" {
		user.Image = req.Image
	}
	user.Touch()

	if err := s.store.Users.Update(ctx, user.ID, user); err != nil {
		if conflictErr := mapUserIndexConflict(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return s.projectUser(user)
}

// projectUser builds the user response with a freshly issued token.
func (s *UserService) projectUser(user *domain.User) (*UserResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &UserResponse{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
		Token:    token,
	}, nil
}

// mapUserIndexConflict translates a unique index violation on the Users
// entity into the field-specific conflict message. Returns nil when err is
// not an index conflict.
func mapUserIndexConflict(err error) error {
	var conflict *store.IndexConflictError
	if !domainerrors.As(err, &conflict) {
		return nil
	}
	switch conflict.Index {
	case store.UserIndexEmail:
		return domainerrors.Conflict("Email already exists")
	case store.UserIndexUsername:
		return domainerrors.Conflict("Username already exists")
	default:
		return domainerrors.Conflict("User already exists")
	}
}
