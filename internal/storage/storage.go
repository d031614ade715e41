package storage

import (
	"context"
	"errors"

	"triphita/internal/models"
)

var (
	// ErrNotFound — запись с таким id/username отсутствует.
	ErrNotFound = errors.New("storage: не найдено")
	// ErrUsernameTaken — username уже занят другим пользователем.
	ErrUsernameTaken = errors.New("storage: username уже занят")
)

// Storage — порт хранилища: единственный способ работы с персистентным
// состоянием. Бэкенд (память или Postgres) выбирается один раз при старте;
// остальной код от него не зависит.
type Storage interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)

	GetAllBlogPosts(ctx context.Context) ([]*models.BlogPost, error)
	GetBlogPost(ctx context.Context, id int) (*models.BlogPost, error)
	CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id int, upd *models.UpdateBlogPostRequest) (*models.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id int) (bool, error)

	SearchBlogPosts(ctx context.Context, query string) ([]*models.BlogPost, error)
	GetBlogPostsByStatus(ctx context.Context, status string) ([]*models.BlogPost, error)
	GetBlogPostsByCategory(ctx context.Context, category string) ([]*models.BlogPost, error)
	GetBlogPostStats(ctx context.Context) (*models.BlogPostStats, error)

	Ping(ctx context.Context) error
	Close()
}
