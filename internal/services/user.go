package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"triphita/internal/logger"
	"triphita/internal/models"
	"triphita/internal/storage"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userService struct {
	store storage.Storage
}

func NewUserService(store storage.Storage) UserService {
	return &userService{store: store}
}

func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	log := logger.WithCtx(ctx)
	log.Info("Регистрация пользователя", zap.String("username", req.Username))

	if err := req.Validate(); err != nil {
		log.Warn("Валидация не пройдена", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	created, err := s.store.CreateUser(ctx, &models.User{
		Username: req.Username,
		Password: string(hash),
	})
	if err != nil {
		log.Warn("Ошибка создания пользователя (storage)", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	log.Info("Пользователь создан", zap.Int("id", created.ID), zap.String("username", created.Username))
	return created, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.GetUserByUsername(ctx, username)
}
