package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"triphita/internal/logger"
	"triphita/internal/models"
	"triphita/internal/storage"
)

// FilterAll — значение-сентинел «без ограничения» для status/category.
const FilterAll = "all"

type PostService interface {
	List(ctx context.Context, search, status, category string) ([]*models.BlogPost, error)
	Get(ctx context.Context, id int) (*models.BlogPost, error)
	Create(ctx context.Context, req models.CreateBlogPostRequest) (*models.BlogPost, error)
	Update(ctx context.Context, id int, req models.UpdateBlogPostRequest) (*models.BlogPost, error)
	Delete(ctx context.Context, id int) (bool, error)
	Search(ctx context.Context, query string) ([]*models.BlogPost, error)
	Stats(ctx context.Context) (*models.BlogPostStats, error)
}

type postService struct {
	store storage.Storage
}

func NewPostService(store storage.Storage) PostService {
	return &postService{store: store}
}

// List возвращает посты с тремя необязательными фильтрами, применяемыми
// совместно (AND): поиск по подстроке, статус, категория.
func (s *postService) List(ctx context.Context, search, status, category string) ([]*models.BlogPost, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение списка постов",
		zap.String("search", search),
		zap.String("status", status),
		zap.String("category", category),
	)

	posts, err := s.store.GetAllBlogPosts(ctx)
	if err != nil {
		log.Error("Ошибка получения постов (storage)", zap.Error(err))
		return nil, err
	}

	posts = filterPosts(posts, search, status, category)

	log.Debug("Список постов получен", zap.Int("count", len(posts)))
	return posts, nil
}

func (s *postService) Get(ctx context.Context, id int) (*models.BlogPost, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение поста по ID", zap.Int("id", id))

	p, err := s.store.GetBlogPost(ctx, id)
	if err != nil {
		log.Warn("Пост не найден (storage)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *postService) Create(ctx context.Context, req models.CreateBlogPostRequest) (*models.BlogPost, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание поста",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.String("status", req.Status),
		zap.Int("tags_count", len(req.Tags)),
	)

	if err := req.Validate(); err != nil {
		log.Warn("Валидация не пройдена", zap.Error(err))
		return nil, err
	}

	post := &models.BlogPost{
		Title:           strings.TrimSpace(req.Title),
		Content:         req.Content,
		Excerpt:         optStr(req.Excerpt),
		Category:        optStr(req.Category),
		Status:          req.Status,
		FeaturedImage:   optStr(req.FeaturedImage),
		MetaDescription: optStr(req.MetaDescription),
		Tags:            req.Tags,
		PublishDate:     parseDate(req.PublishDate),
	}

	created, err := s.store.CreateBlogPost(ctx, post)
	if err != nil {
		log.Error("Ошибка создания поста (storage)", zap.Error(err))
		return nil, err
	}

	log.Info("Пост создан", zap.Int("id", created.ID), zap.String("status", created.Status))
	return created, nil
}

func (s *postService) Update(ctx context.Context, id int, req models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление поста", zap.Int("id", id))

	if err := req.Validate(); err != nil {
		log.Warn("Валидация не пройдена", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.store.UpdateBlogPost(ctx, id, &req)
	if err != nil {
		log.Warn("Ошибка обновления поста (storage)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Пост обновлён", zap.Int("id", id))
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id int) (bool, error) {
	log := logger.WithCtx(ctx)
	log.Info("Удаление поста", zap.Int("id", id))

	deleted, err := s.store.DeleteBlogPost(ctx, id)
	if err != nil {
		log.Error("Ошибка удаления поста (storage)", zap.Int("id", id), zap.Error(err))
		return false, err
	}
	if !deleted {
		log.Warn("Пост для удаления не найден", zap.Int("id", id))
	}
	return deleted, nil
}

func (s *postService) Search(ctx context.Context, query string) ([]*models.BlogPost, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Поиск постов", zap.String("query", query))

	posts, err := s.store.SearchBlogPosts(ctx, query)
	if err != nil {
		log.Error("Ошибка поиска постов (storage)", zap.Error(err))
		return nil, err
	}

	log.Debug("Поиск завершён", zap.String("query", query), zap.Int("count", len(posts)))
	return posts, nil
}

func (s *postService) Stats(ctx context.Context) (*models.BlogPostStats, error) {
	log := logger.WithCtx(ctx)

	stats, err := s.store.GetBlogPostStats(ctx)
	if err != nil {
		log.Error("Ошибка получения статистики (storage)", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

// filterPosts применяет фильтры как конъюнкцию. Пустое значение или
// «all» для status/category — без ограничения.
func filterPosts(posts []*models.BlogPost, search, status, category string) []*models.BlogPost {
	out := make([]*models.BlogPost, 0, len(posts))
	for _, p := range posts {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if status != "" && status != FilterAll && p.Status != status {
			continue
		}
		if category != "" && category != FilterAll && (p.Category == nil || *p.Category != category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesSearch — регистронезависимое вхождение подстроки в title, content,
// excerpt, category или любой из тегов.
func matchesSearch(p *models.BlogPost, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	if p.Excerpt != nil && strings.Contains(strings.ToLower(*p.Excerpt), q) {
		return true
	}
	if p.Category != nil && strings.Contains(strings.ToLower(*p.Category), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func optStr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
