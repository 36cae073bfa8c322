package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyforge/platform/internal/auth"
	"github.com/studyforge/platform/internal/domain"
	"github.com/studyforge/platform/internal/guard"
	"github.com/studyforge/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user registration and login.
type AuthService struct {
	pool     *pgxpool.Pool
	users    repository.AuthUserRepository
	profiles repository.ProfileRepository
	outbox   repository.OutboxRepository
	jwtMgr   *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	users repository.AuthUserRepository,
	profiles repository.ProfileRepository,
	outbox repository.OutboxRepository,
	jwtMgr *auth.JWTManager,
) *AuthService {
	return &AuthService{
		pool:     pool,
		users:    users,
		profiles: profiles,
		outbox:   outbox,
		jwtMgr:   jwtMgr,
	}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token  string             `json:"token"`
	UserID uuid.UUID          `json:"user_id"`
	Email  string             `json:"email"`
	View   domain.ProfileView `json:"profile"`
}

// Register creates a new user account and its zeroed progress profile within
// a single transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	existing, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrPersistence("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrPersistence("begin tx", err)
	}
	defer tx.Rollback(ctx)

	userID := uuid.New()

	user := &domain.AuthUser{
		ID:           userID,
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, tx, user); err != nil {
		return nil, domain.ErrPersistence("create user", err)
	}

	profile, err := s.profiles.GetOrCreate(ctx, tx, userID)
	if err != nil {
		return nil, domain.ErrPersistence("create profile", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewUserRegisteredEvent(userID, input.Email)); err != nil {
		return nil, domain.ErrPersistence("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrPersistence("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(userID, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:  token,
		UserID: userID,
		Email:  input.Email,
		View:   profile.View(),
	}, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a JWT. Repeated failures within the
// lockout window reject further attempts before the password is checked.
func (s *AuthService) Login(ctx context.Context, input LoginInput, clientIP string) (*AuthResult, error) {
	if err := guard.CheckLocked(ctx, s.pool, input.Email); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrPersistence("find user", err)
	}
	if user == nil {
		guard.RecordAttempt(ctx, s.pool, input.Email, clientIP, false)
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.pool, input.Email, clientIP, false)
		return nil, domain.ErrUnauthorized("invalid credentials")
	}
	guard.RecordAttempt(ctx, s.pool, input.Email, clientIP, true)

	profile, err := s.profiles.GetOrCreate(ctx, s.pool, user.ID)
	if err != nil {
		return nil, domain.ErrPersistence("load profile", err)
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		View:   profile.View(),
	}, nil
}
