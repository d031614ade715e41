package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"triphita/internal/models"
	"triphita/internal/storage"
)

// MemStore — бэкенд в памяти процесса: для разработки и тестов.
// Данные живут до рестарта, при каждом старте заново сидируются три поста.
type MemStore struct {
	mu sync.Mutex

	users      map[int]*models.User
	posts      map[int]*models.BlogPost
	nextUserID int
	nextPostID int
}

func New() *MemStore {
	s := &MemStore{
		users:      make(map[int]*models.User),
		posts:      make(map[int]*models.BlogPost),
		nextUserID: 1,
		nextPostID: 1,
	}

	now := time.Now()
	for i, p := range storage.SeedPosts() {
		post := clonePost(p)
		post.ID = s.nextPostID
		s.nextPostID++
		// первый сид — самый свежий
		post.CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		post.UpdatedAt = post.CreatedAt
		s.posts[post.ID] = post
	}

	return s
}

func (s *MemStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *MemStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, storage.ErrUsernameTaken
		}
	}

	cp := *user
	cp.ID = s.nextUserID
	s.nextUserID++
	s.users[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *MemStore) GetAllBlogPosts(ctx context.Context) ([]*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedPosts(nil), nil
}

func (s *MemStore) GetBlogPost(ctx context.Context, id int) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *MemStore) CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// выдача id и вставка — одна критическая секция,
	// иначе под конкуренцией возможны дубли id
	cp := clonePost(post)
	cp.ID = s.nextPostID
	s.nextPostID++

	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if cp.Status == "" {
		cp.Status = models.StatusDraft
	}
	s.posts[cp.ID] = cp

	return clonePost(cp), nil
}

func (s *MemStore) UpdateBlogPost(ctx context.Context, id int, upd *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Excerpt != nil {
		p.Excerpt = optStr(*upd.Excerpt)
	}
	if upd.Category != nil {
		p.Category = optStr(*upd.Category)
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.FeaturedImage != nil {
		p.FeaturedImage = optStr(*upd.FeaturedImage)
	}
	if upd.MetaDescription != nil {
		p.MetaDescription = optStr(*upd.MetaDescription)
	}
	if upd.Tags != nil {
		p.Tags = append([]string(nil), (*upd.Tags)...)
	}
	if upd.PublishDate != nil {
		p.PublishDate = parseDate(*upd.PublishDate)
	}
	p.UpdatedAt = time.Now()

	return clonePost(p), nil
}

func (s *MemStore) DeleteBlogPost(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}

func (s *MemStore) SearchBlogPosts(ctx context.Context, query string) ([]*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	return s.sortedPosts(func(p *models.BlogPost) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) ||
			containsLower(p.Excerpt, q) ||
			containsLower(p.Category, q)
	}), nil
}

func (s *MemStore) GetBlogPostsByStatus(ctx context.Context, status string) ([]*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedPosts(func(p *models.BlogPost) bool {
		return p.Status == status
	}), nil
}

func (s *MemStore) GetBlogPostsByCategory(ctx context.Context, category string) ([]*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedPosts(func(p *models.BlogPost) bool {
		return p.Category != nil && *p.Category == category
	}), nil
}

func (s *MemStore) GetBlogPostStats(ctx context.Context) (*models.BlogPostStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stats := &models.BlogPostStats{}
	for _, p := range s.posts {
		stats.TotalPosts++
		switch p.Status {
		case models.StatusPublished:
			stats.PublishedPosts++
		case models.StatusDraft:
			stats.DraftPosts++
		}
		if p.CreatedAt.Year() == now.Year() && p.CreatedAt.Month() == now.Month() {
			stats.MonthlyPosts++
		}
	}
	return stats, nil
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Close() {}

// sortedPosts возвращает копии постов (match==nil — все) в порядке
// created_at DESC, при равенстве — id DESC. Вызывать под мьютексом.
func (s *MemStore) sortedPosts(match func(*models.BlogPost) bool) []*models.BlogPost {
	out := make([]*models.BlogPost, 0, len(s.posts))
	for _, p := range s.posts {
		if match == nil || match(p) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func clonePost(p *models.BlogPost) *models.BlogPost {
	cp := *p
	if p.Tags != nil {
		cp.Tags = append([]string(nil), p.Tags...)
	}
	return &cp
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func containsLower(s *string, q string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), q)
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
