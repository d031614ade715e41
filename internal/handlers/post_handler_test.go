package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"triphita/internal/handlers"
	"triphita/internal/logger"
	"triphita/internal/models"
	"triphita/internal/routes"
	"triphita/internal/services"
	"triphita/internal/storage/memstore"
)

type envelope struct {
	Data   json.RawMessage     `json:"data"`
	Error  string              `json:"error"`
	Fields []models.FieldError `json:"fields"`
}

func newTestRouter() *mux.Router {
	logger.Log = zap.NewNop()

	store := memstore.New()
	postHandler := handlers.NewPostHandler(services.NewPostService(store))
	userHandler := handlers.NewUserHandler(services.NewUserService(store))
	healthHandler := handlers.NewHealthHandler(store)

	router := mux.NewRouter()
	routes.InitRoutes(router, postHandler, userHandler, healthHandler)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("кодирование тела запроса: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("разбор ответа %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestListPostsSeeded(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodGet, "/api/blog-posts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d", rec.Code)
	}

	var posts []models.BlogPost
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatalf("разбор списка постов: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("ожидалось 3 демо-поста, получили %d", len(posts))
	}
}

func TestCreateAndGetPost(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/api/blog-posts", models.CreateBlogPostRequest{
		Title:   "Новый пост",
		Content: "<p>тело</p>",
		Tags:    []string{"тест"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получили %d (%s)", rec.Code, rec.Body.String())
	}

	var created models.BlogPost
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("разбор созданного поста: %v", err)
	}
	if created.ID == 0 || created.Status != models.StatusDraft {
		t.Fatalf("пост создан неверно: %+v", created)
	}

	rec, env = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/blog-posts/%d", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d", rec.Code)
	}
	var got models.BlogPost
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Title != "Новый пост" {
		t.Fatalf("получен не тот пост: %+v", got)
	}
}

func TestCreatePostValidation(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/api/blog-posts", models.CreateBlogPostRequest{
		Title:   "",
		Content: "",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получили %d", rec.Code)
	}
	if len(env.Fields) != 2 {
		t.Fatalf("ожидались ошибки по title и content: %+v", env.Fields)
	}
}

func TestGetPostNotFound(t *testing.T) {
	router := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodGet, "/api/blog-posts/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался 404, получили %d", rec.Code)
	}
}

func TestUpdatePost(t *testing.T) {
	router := newTestRouter()

	title := "Обновлённый заголовок"
	rec, env := doJSON(t, router, http.MethodPatch, "/api/blog-posts/1", models.UpdateBlogPostRequest{
		Title: &title,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d (%s)", rec.Code, rec.Body.String())
	}
	var updated models.BlogPost
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Title != title {
		t.Fatalf("заголовок не обновился: %+v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("updatedAt не может быть раньше createdAt")
	}

	// пустой присланный title — это ошибка, а не «не менять»
	empty := ""
	rec, _ = doJSON(t, router, http.MethodPatch, "/api/blog-posts/1", models.UpdateBlogPostRequest{Title: &empty})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получили %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPatch, "/api/blog-posts/9999", models.UpdateBlogPostRequest{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался 404, получили %d", rec.Code)
	}
}

func TestDeletePost(t *testing.T) {
	router := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodDelete, "/api/blog-posts/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/blog-posts/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("повторное удаление должно давать 404, получили %d", rec.Code)
	}
}

func TestListPostsCombinedFilters(t *testing.T) {
	router := newTestRouter()

	for _, req := range []models.CreateBlogPostRequest{
		{Title: "A", Content: "к", Status: models.StatusPublished, Category: "Travel"},
		{Title: "B", Content: "к", Status: models.StatusDraft, Category: "Travel"},
		{Title: "C", Content: "к", Status: models.StatusPublished, Category: "Food"},
	} {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/blog-posts", req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("создание фикстуры: %d", rec.Code)
		}
	}

	rec, env := doJSON(t, router, http.MethodGet, "/api/blog-posts?status=published&category=Travel", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d", rec.Code)
	}
	var posts []models.BlogPost
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Title != "A" {
		t.Fatalf("конъюнкция фильтров должна оставить только A: %+v", posts)
	}
}

func TestStatsMatchesList(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodGet, "/api/blog-posts/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d", rec.Code)
	}
	var stats models.BlogPostStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatal(err)
	}

	_, listEnv := doJSON(t, router, http.MethodGet, "/api/blog-posts", nil)
	var posts []models.BlogPost
	if err := json.Unmarshal(listEnv.Data, &posts); err != nil {
		t.Fatal(err)
	}
	if stats.TotalPosts != len(posts) {
		t.Fatalf("totalPosts (%d) != длине списка (%d)", stats.TotalPosts, len(posts))
	}
	if stats.PublishedPosts != 2 || stats.DraftPosts != 1 {
		t.Fatalf("неверная статистика по сидам: %+v", stats)
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodGet, "/api/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("пустой запрос должен давать 400, получили %d", rec.Code)
	}

	rec, env := doJSON(t, router, http.MethodGet, "/api/search?query=бангкок", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d", rec.Code)
	}
	var posts []models.BlogPost
	if err := json.Unmarshal(env.Data, &posts); err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 {
		t.Fatalf("поиск по сидам должен найти один пост: %+v", posts)
	}
}

func TestRegisterUser(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/api/register", models.RegisterRequest{
		Username: "editor",
		Password: "secret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получили %d (%s)", rec.Code, rec.Body.String())
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatal(err)
	}
	if user.ID == 0 || user.Username != "editor" {
		t.Fatalf("пользователь создан неверно: %+v", user)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/register", models.RegisterRequest{
		Username: "editor",
		Password: "другой",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("дубликат username должен давать 409, получили %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получили %d", rec.Code)
	}
}
