package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"triphita/internal/models"
	"triphita/internal/storage"
)

func newPost(title, content, category, status string, tags []string) *models.BlogPost {
	var cat *string
	if category != "" {
		cat = &category
	}
	return &models.BlogPost{
		Title:    title,
		Content:  content,
		Category: cat,
		Status:   status,
		Tags:     tags,
	}
}

func TestSeedPosts(t *testing.T) {
	s := New()

	posts, err := s.GetAllBlogPosts(context.Background())
	if err != nil {
		t.Fatalf("GetAllBlogPosts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("ожидалось 3 демо-поста, получили %d", len(posts))
	}
	for _, p := range posts {
		if p.ID == 0 || p.Title == "" || p.Content == "" {
			t.Errorf("демо-пост заполнен не полностью: %+v", p)
		}
		if p.UpdatedAt.Before(p.CreatedAt) {
			t.Errorf("updatedAt раньше createdAt у поста %d", p.ID)
		}
	}
}

func TestCreateAndGetBlogPost(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateBlogPost(ctx, newPost("Тест", "<p>Контент</p>", "Путешествия", "", []string{"тест"}))
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("id не сгенерирован")
	}
	if created.Status != models.StatusDraft {
		t.Errorf("статус по умолчанию должен быть draft, получили %q", created.Status)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("при создании createdAt и updatedAt должны совпадать: %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := s.GetBlogPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBlogPost: %v", err)
	}
	if got.Title != "Тест" || got.Content != "<p>Контент</p>" || *got.Category != "Путешествия" {
		t.Errorf("пост после создания не совпадает с входом: %+v", got)
	}
}

func TestGetBlogPostNotFound(t *testing.T) {
	s := New()

	_, err := s.GetBlogPost(context.Background(), 9999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получили %v", err)
	}
}

func TestDeleteBlogPostIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateBlogPost(ctx, newPost("На удаление", "х", "", models.StatusDraft, nil))
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	deleted, err := s.DeleteBlogPost(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("первое удаление должно вернуть true: %v, %v", deleted, err)
	}
	deleted, err = s.DeleteBlogPost(ctx, created.ID)
	if err != nil || deleted {
		t.Fatalf("повторное удаление должно вернуть false: %v, %v", deleted, err)
	}
}

func TestUpdateBlogPostPartial(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateBlogPost(ctx, newPost("Старый заголовок", "контент", "Еда", models.StatusDraft, []string{"еда"}))
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	newTitle := "Новый заголовок"
	newStatus := models.StatusPublished
	updated, err := s.UpdateBlogPost(ctx, created.ID, &models.UpdateBlogPostRequest{
		Title:  &newTitle,
		Status: &newStatus,
	})
	if err != nil {
		t.Fatalf("UpdateBlogPost: %v", err)
	}

	if updated.Title != newTitle || updated.Status != newStatus {
		t.Errorf("присланные поля не применились: %+v", updated)
	}
	if updated.Content != "контент" || *updated.Category != "Еда" || len(updated.Tags) != 1 {
		t.Errorf("неприсланные поля должны сохраниться: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt не должен меняться при обновлении")
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("updatedAt должен расти при обновлении")
	}
}

func TestUpdateBlogPostEmptyPartial(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateBlogPost(ctx, newPost("Заголовок", "контент", "Культура", models.StatusPublished, []string{"а", "б"}))
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	updated, err := s.UpdateBlogPost(ctx, created.ID, &models.UpdateBlogPostRequest{})
	if err != nil {
		t.Fatalf("UpdateBlogPost: %v", err)
	}

	if updated.Title != created.Title ||
		updated.Content != created.Content ||
		*updated.Category != *created.Category ||
		updated.Status != created.Status ||
		len(updated.Tags) != len(created.Tags) ||
		!updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("пустой partial должен менять только updatedAt: %+v vs %+v", updated, created)
	}
}

func TestUpdateBlogPostNotFound(t *testing.T) {
	s := New()

	_, err := s.UpdateBlogPost(context.Background(), 4242, &models.UpdateBlogPostRequest{})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получили %v", err)
	}
}

func TestGetAllBlogPostsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, title := range []string{"первый", "второй", "третий"} {
		if _, err := s.CreateBlogPost(ctx, newPost(title, "к", "", models.StatusDraft, nil)); err != nil {
			t.Fatalf("CreateBlogPost: %v", err)
		}
	}

	posts, err := s.GetAllBlogPosts(ctx)
	if err != nil {
		t.Fatalf("GetAllBlogPosts: %v", err)
	}
	for i := 1; i < len(posts); i++ {
		prev, cur := posts[i-1], posts[i]
		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Fatalf("нарушен порядок createdAt DESC: %v после %v", prev.CreatedAt, cur.CreatedAt)
		}
		if cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID {
			t.Fatalf("при равных createdAt ожидается id DESC")
		}
	}
}

func TestSearchBlogPostsCaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateBlogPost(ctx, newPost("Weekend in PRAGUE", "старый город", "", models.StatusDraft, nil)); err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	found, err := s.SearchBlogPosts(ctx, "prague")
	if err != nil {
		t.Fatalf("SearchBlogPosts: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Weekend in PRAGUE" {
		t.Fatalf("регистронезависимый поиск по title не сработал: %+v", found)
	}

	found, err = s.SearchBlogPosts(ctx, "СТАРЫЙ ГОРОД")
	if err != nil {
		t.Fatalf("SearchBlogPosts: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("регистронезависимый поиск по content не сработал: %+v", found)
	}
}

func TestGetBlogPostsByStatusAndCategory(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateBlogPost(ctx, newPost("A", "к", "Travel", models.StatusPublished, nil)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateBlogPost(ctx, newPost("B", "к", "Travel", models.StatusDraft, nil)); err != nil {
		t.Fatal(err)
	}

	byStatus, err := s.GetBlogPostsByStatus(ctx, models.StatusDraft)
	if err != nil {
		t.Fatalf("GetBlogPostsByStatus: %v", err)
	}
	for _, p := range byStatus {
		if p.Status != models.StatusDraft {
			t.Errorf("лишний пост в фильтре по статусу: %+v", p)
		}
	}

	byCategory, err := s.GetBlogPostsByCategory(ctx, "Travel")
	if err != nil {
		t.Fatalf("GetBlogPostsByCategory: %v", err)
	}
	if len(byCategory) != 2 {
		t.Fatalf("ожидалось 2 поста категории Travel, получили %d", len(byCategory))
	}
}

func TestGetBlogPostStats(t *testing.T) {
	s := New()
	ctx := context.Background()

	// сиды: published, draft, published
	stats, err := s.GetBlogPostStats(ctx)
	if err != nil {
		t.Fatalf("GetBlogPostStats: %v", err)
	}
	if stats.TotalPosts != 3 || stats.PublishedPosts != 2 || stats.DraftPosts != 1 {
		t.Fatalf("неверная статистика по сидам: %+v", stats)
	}

	posts, err := s.GetAllBlogPosts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalPosts != len(posts) {
		t.Errorf("totalPosts (%d) != длине списка (%d)", stats.TotalPosts, len(posts))
	}

	now := time.Now()
	wantMonthly := 0
	for _, p := range posts {
		if p.CreatedAt.Year() == now.Year() && p.CreatedAt.Month() == now.Month() {
			wantMonthly++
		}
	}
	if stats.MonthlyPosts != wantMonthly {
		t.Errorf("monthlyPosts: ожидалось %d, получили %d", wantMonthly, stats.MonthlyPosts)
	}
}

func TestCreateUserUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &models.User{Username: "editor", Password: "hash"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("id пользователя не сгенерирован")
	}

	_, err = s.CreateUser(ctx, &models.User{Username: "editor", Password: "другой"})
	if !errors.Is(err, storage.ErrUsernameTaken) {
		t.Fatalf("ожидалась ErrUsernameTaken, получили %v", err)
	}

	got, err := s.GetUserByUsername(ctx, "editor")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.Password != "hash" {
		t.Error("повторная регистрация не должна перезаписывать пользователя")
	}

	byID, err := s.GetUser(ctx, created.ID)
	if err != nil || byID.Username != "editor" {
		t.Fatalf("GetUser: %v, %+v", err, byID)
	}
}
