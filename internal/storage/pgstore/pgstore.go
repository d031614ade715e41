package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"triphita/internal/logger"
	"triphita/internal/models"
	"triphita/internal/storage"
)

// PgStore — бэкенд на Postgres. Только параметризованные запросы,
// теги храним как jsonb (как и массивы строк в остальных наших таблицах).
type PgStore struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PgStore{db: pool}, nil
}

const postColumns = `id, title, content, excerpt, category, status,
	featured_image, meta_description, tags, publish_date, created_at, updated_at`

func (s *PgStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	const q = `SELECT id, username, password FROM users WHERE id = $1`
	var u models.User
	err := s.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PgStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `SELECT id, username, password FROM users WHERE username = $1`
	var u models.User
	err := s.db.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PgStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	const qExists = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var taken bool
	if err := s.db.QueryRow(ctx, qExists, user.Username).Scan(&taken); err != nil {
		return nil, err
	}
	if taken {
		return nil, storage.ErrUsernameTaken
	}

	const q = `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password`
	var out models.User
	if err := s.db.QueryRow(ctx, q, user.Username, user.Password).Scan(
		&out.ID, &out.Username, &out.Password,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PgStore) GetAllBlogPosts(ctx context.Context) ([]*models.BlogPost, error) {
	q := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY created_at DESC, id DESC`
	return s.queryPosts(ctx, q)
}

func (s *PgStore) GetBlogPost(ctx context.Context, id int) (*models.BlogPost, error) {
	q := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1`
	p, err := scanPost(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PgStore) CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	tagsJSON, _ := json.Marshal(post.Tags)

	q := `
		INSERT INTO blog_posts
			(title, content, excerpt, category, status, featured_image, meta_description, tags, publish_date)
		VALUES ($1, $2, NULLIF($3,''), NULLIF($4,''), $5, NULLIF($6,''), NULLIF($7,''), $8::jsonb, $9)
		RETURNING ` + postColumns

	return scanPost(s.db.QueryRow(ctx, q,
		post.Title,
		post.Content,
		deref(post.Excerpt),
		deref(post.Category),
		post.Status,
		deref(post.FeaturedImage),
		deref(post.MetaDescription),
		tagsJSON,
		post.PublishDate,
	))
}

func (s *PgStore) UpdateBlogPost(ctx context.Context, id int, upd *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}
	i := 1

	addStr := func(col string, v *string, nullable bool) {
		if v == nil {
			return
		}
		if nullable {
			set = append(set, fmt.Sprintf("%s = NULLIF($%d,'')", col, i))
		} else {
			set = append(set, fmt.Sprintf("%s = $%d", col, i))
		}
		args = append(args, *v)
		i++
	}

	addStr("title", upd.Title, false)
	addStr("content", upd.Content, false)
	addStr("excerpt", upd.Excerpt, true)
	addStr("category", upd.Category, true)
	addStr("status", upd.Status, false)
	addStr("featured_image", upd.FeaturedImage, true)
	addStr("meta_description", upd.MetaDescription, true)

	if upd.Tags != nil {
		tagsJSON, _ := json.Marshal(*upd.Tags)
		set = append(set, fmt.Sprintf("tags = $%d::jsonb", i))
		args = append(args, tagsJSON)
		i++
	}
	if upd.PublishDate != nil {
		set = append(set, fmt.Sprintf("publish_date = $%d", i))
		args = append(args, parseDate(*upd.PublishDate))
		i++
	}

	q := fmt.Sprintf(
		"UPDATE blog_posts SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), i, postColumns,
	)
	args = append(args, id)

	p, err := scanPost(s.db.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PgStore) DeleteBlogPost(ctx context.Context, id int) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PgStore) SearchBlogPosts(ctx context.Context, query string) ([]*models.BlogPost, error) {
	// ILIKE, чтобы поведение совпадало с memstore независимо от collation
	q := `SELECT ` + postColumns + ` FROM blog_posts
		WHERE title ILIKE '%' || $1 || '%'
		   OR content ILIKE '%' || $1 || '%'
		   OR COALESCE(excerpt, '') ILIKE '%' || $1 || '%'
		   OR COALESCE(category, '') ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC`
	return s.queryPosts(ctx, q, query)
}

func (s *PgStore) GetBlogPostsByStatus(ctx context.Context, status string) ([]*models.BlogPost, error) {
	q := `SELECT ` + postColumns + ` FROM blog_posts WHERE status = $1 ORDER BY created_at DESC, id DESC`
	return s.queryPosts(ctx, q, status)
}

func (s *PgStore) GetBlogPostsByCategory(ctx context.Context, category string) ([]*models.BlogPost, error) {
	q := `SELECT ` + postColumns + ` FROM blog_posts WHERE category = $1 ORDER BY created_at DESC, id DESC`
	return s.queryPosts(ctx, q, category)
}

func (s *PgStore) GetBlogPostStats(ctx context.Context) (*models.BlogPostStats, error) {
	stats := &models.BlogPostStats{}

	counts := []struct {
		q    string
		args []interface{}
		dst  *int
	}{
		{`SELECT COUNT(*) FROM blog_posts`, nil, &stats.TotalPosts},
		{`SELECT COUNT(*) FROM blog_posts WHERE status = $1`, []interface{}{models.StatusPublished}, &stats.PublishedPosts},
		{`SELECT COUNT(*) FROM blog_posts WHERE status = $1`, []interface{}{models.StatusDraft}, &stats.DraftPosts},
		// посты текущего календарного месяца
		{`SELECT COUNT(*) FROM blog_posts WHERE date_trunc('month', created_at) = date_trunc('month', NOW())`, nil, &stats.MonthlyPosts},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(ctx, c.q, c.args...).Scan(c.dst); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *PgStore) Ping(ctx context.Context) error { return s.db.Ping(ctx) }

func (s *PgStore) Close() { s.db.Close() }

func (s *PgStore) queryPosts(ctx context.Context, q string, args ...interface{}) ([]*models.BlogPost, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func scanPost(row pgx.Row) (*models.BlogPost, error) {
	var p models.BlogPost
	var tagsRaw []byte
	if err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Category, &p.Status,
		&p.FeaturedImage, &p.MetaDescription, &tagsRaw, &p.PublishDate,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if tagsRaw != nil {
		if err := json.Unmarshal(tagsRaw, &p.Tags); err != nil {
			logger.Log.Warn("Не удалось разобрать tags (pgstore)", zap.Int("id", p.ID), zap.Error(err))
		}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
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
