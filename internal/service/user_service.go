package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/specification"
	"markit-notes-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Register(ctx context.Context, username, password string) (uint, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*entity.User, error)
	UpdateRememberToken(ctx context.Context, userId uint, token *string) error
	IssueRememberToken(ctx context.Context, userId uint) (string, error)
	IssueAccessToken(userId uint) (string, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	jwtSecret  string
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	jwtSecret string,
	tokenTTL time.Duration,
) IUserService {
	if jwtSecret == "" {
		jwtSecret = "default_secret"
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &userService{
		uowFactory: uowFactory,
		logger:     logger,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		now:        utcNow,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, apperror.Validation("Username and password are required")
	}
	if strings.HasPrefix(username, ".") {
		return 0, apperror.Validation("Username cannot start with a dot")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := entity.User{Username: username, PasswordHash: string(hash)}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		existing, err := tx.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
		if err != nil {
			return apperror.Storage("find user", err)
		}
		if existing != nil {
			return apperror.Validation("Username already exists")
		}
		return apperror.Storage("create user", tx.UserRepository().Create(ctx, &user))
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("USER", "user registered", map[string]interface{}{"user_id": user.Id, "username": username})
	return user.Id, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: strings.TrimSpace(username)})
	if err != nil {
		return nil, apperror.Storage("find user", err)
	}
	return user, nil
}

func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Id == entity.SystemUserID {
		return nil, apperror.Validation("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperror.Validation("Invalid credentials")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRememberToken(ctx context.Context, userId uint, token *string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.Do(ctx, func(tx unitofwork.UnitOfWork) error {
		user, err := tx.UserRepository().FindOne(ctx, specification.ByUserID{ID: userId})
		if err != nil {
			return apperror.Storage("find user", err)
		}
		if user == nil {
			return apperror.NotFound("User not found")
		}
		user.RememberToken = token
		return apperror.Storage("update remember token", tx.UserRepository().Update(ctx, user))
	})
}

func (s *userService) IssueRememberToken(ctx context.Context, userId uint) (string, error) {
	token := uuid.NewString()
	if err := s.UpdateRememberToken(ctx, userId, &token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *userService) IssueAccessToken(userId uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId,
		"exp":     s.now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
