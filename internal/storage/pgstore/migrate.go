package pgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"triphita/internal/logger"
	"triphita/internal/storage"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id       SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id               SERIAL PRIMARY KEY,
		title            TEXT NOT NULL,
		content          TEXT NOT NULL,
		excerpt          TEXT,
		category         VARCHAR(100),
		status           VARCHAR(50) NOT NULL DEFAULT 'draft',
		featured_image   TEXT,
		meta_description TEXT,
		tags             JSONB,
		publish_date     TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_posts_status ON blog_posts (status)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_posts_category ON blog_posts (category)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_posts_created_at ON blog_posts (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_posts_publish_date ON blog_posts (publish_date)`,
}

// Migrate создаёт схему, если её ещё нет.
func (s *PgStore) Migrate(ctx context.Context) error {
	for _, q := range migrations {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return fmt.Errorf("миграция схемы: %w", err)
		}
	}
	return nil
}

// Seed вставляет демо-посты, только если таблица пуста.
// Повторный запуск ничего не делает.
func (s *PgStore) Seed(ctx context.Context) error {
	var hasRows bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM blog_posts)`).Scan(&hasRows); err != nil {
		return err
	}
	if hasRows {
		return nil
	}

	const q = `
		INSERT INTO blog_posts
			(title, content, excerpt, category, status, featured_image, meta_description, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $9)`

	now := time.Now()
	for i, p := range storage.SeedPosts() {
		tagsJSON, _ := json.Marshal(p.Tags)
		createdAt := now.Add(-time.Duration(i) * time.Minute)
		if _, err := s.db.Exec(ctx, q,
			p.Title, p.Content, p.Excerpt, p.Category, p.Status,
			p.FeaturedImage, p.MetaDescription, tagsJSON, createdAt,
		); err != nil {
			return fmt.Errorf("сидирование постов: %w", err)
		}
	}

	logger.Log.Info("Демо-посты добавлены в пустую базу", zap.Int("count", len(storage.SeedPosts())))
	return nil
}
