package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gruzBack/internal/models"
	"gruzBack/utils"
)

// UserRepo is the persistence surface the user service needs.
type UserRepo interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	SignUpUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (models.User, error)
	UpdateUserRole(ctx context.Context, userID int, role string) error
	CreateSession(ctx context.Context, s models.Session) error
	CreateExecutorProfile(ctx context.Context, userID int) error
	GetExecutorProfile(ctx context.Context, userID int) (models.ExecutorProfile, error)
	UpdateExecutorProfile(ctx context.Context, userID int, patch models.ExecutorProfilePatch) error
	GetUserStats(ctx context.Context, userID int) (models.UserStats, error)
}

type UserService struct {
	UserRepo     UserRepo
	TokenManager *utils.Manager
}

const (
	accessTokenTTL  = 20 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// GetOrCreateUser registers a user on first contact; repeated calls only
// refresh the display names.
func (s *UserService) GetOrCreateUser(ctx context.Context, id int, username, fullName string) (models.User, error) {
	return s.UserRepo.CreateUser(ctx, models.User{ID: id, Username: username, FullName: fullName})
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	return s.UserRepo.SignUpUser(ctx, models.User{
		Username: req.Username,
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: string(hash),
	})
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.UserRepo.GetUserByPhone(ctx, req.Phone)
	if errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}

	access, err := s.TokenManager.NewJWT(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	refresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.UserRepo.CreateSession(ctx, session); err != nil {
		return models.User{}, models.Tokens{}, err
	}

	user.Password = ""
	return user, models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUser(ctx, id)
}

// SwitchToExecutor flips the role and lazily creates the executor profile.
// Calling it for an existing executor is a no-op.
func (s *UserService) SwitchToExecutor(ctx context.Context, userID int) error {
	user, err := s.UserRepo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsExecutor() {
		return nil
	}
	if err := s.UserRepo.UpdateUserRole(ctx, userID, models.RoleExecutor); err != nil {
		return err
	}
	return s.UserRepo.CreateExecutorProfile(ctx, userID)
}

func (s *UserService) GetExecutorProfile(ctx context.Context, userID int) (models.ExecutorProfile, error) {
	return s.UserRepo.GetExecutorProfile(ctx, userID)
}

func (s *UserService) UpdateExecutorProfile(ctx context.Context, userID int, patch models.ExecutorProfilePatch) (models.ExecutorProfile, error) {
	if err := s.UserRepo.UpdateExecutorProfile(ctx, userID, patch); err != nil {
		return models.ExecutorProfile{}, err
	}
	return s.UserRepo.GetExecutorProfile(ctx, userID)
}

func (s *UserService) GetUserStats(ctx context.Context, userID int) (models.UserStats, error) {
	return s.UserRepo.GetUserStats(ctx, userID)
}
