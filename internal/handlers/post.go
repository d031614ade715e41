package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"triphita/internal/logger"
	"triphita/internal/models"
	"triphita/internal/services"
	"triphita/internal/storage"
	helpers "triphita/internal/utils/helpers"
)

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPosts godoc
// @Summary Получить список постов с фильтрами
// @Tags blog-posts
// @Produce json
// @Param search query string false "Поиск по подстроке (title/content/excerpt/category/tags)"
// @Param status query string false "Фильтр по статусу (draft|published|scheduled|all)"
// @Param category query string false "Фильтр по категории (или all)"
// @Success 200 {array} models.BlogPost
// @Router /api/blog-posts [get]
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := h.postService.List(r.Context(), q.Get("search"), q.Get("status"), q.Get("category"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, posts)
}

// GetStats godoc
// @Summary Статистика по постам
// @Tags blog-posts
// @Produce json
// @Success 200 {object} models.BlogPostStats
// @Router /api/blog-posts/stats [get]
func (h *PostHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.postService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, stats)
}

// GetPost godoc
// @Summary Получить пост по ID
// @Tags blog-posts
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} helpers.Response
// @Router /api/blog-posts/{id} [get]
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, post)
}

// CreatePost godoc
// @Summary Создать пост
// @Tags blog-posts
// @Accept json
// @Produce json
// @Param input body models.CreateBlogPostRequest true "Данные поста"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} helpers.Response
// @Router /api/blog-posts [post]
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при создании поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	created, err := h.postService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}

// UpdatePost godoc
// @Summary Частично обновить пост
// @Description Отсутствующие поля не меняются; присланные обязаны проходить правила создания.
// @Tags blog-posts
// @Accept json
// @Produce json
// @Param id path int true "ID поста"
// @Param input body models.UpdateBlogPostRequest true "Изменяемые поля"
// @Success 200 {object} models.BlogPost
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/blog-posts/{id} [patch]
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при обновлении поста", zap.Int("id", id), zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	updated, err := h.postService.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, updated)
}

// DeletePost godoc
// @Summary Удалить пост
// @Tags blog-posts
// @Produce json
// @Param id path int true "ID поста"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} helpers.Response
// @Router /api/blog-posts/{id} [delete]
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	deleted, err := h.postService.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		helpers.Error(w, http.StatusNotFound, "Пост не найден")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// SearchPosts godoc
// @Summary Поиск постов по подстроке
// @Tags search
// @Produce json
// @Param query query string true "Поисковый запрос"
// @Success 200 {array} models.BlogPost
// @Failure 400 {object} helpers.Response
// @Router /api/search [get]
func (h *PostHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		helpers.Error(w, http.StatusBadRequest, "Пустой запрос")
		return
	}

	posts, err := h.postService.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, posts)
}

// writeServiceError переводит ошибки сервисов в HTTP-статусы.
// Детали сбоев хранилища наружу не отдаём — они уже в логах.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		helpers.Validation(w, ve)
	case errors.Is(err, storage.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, "Не найдено")
	case errors.Is(err, storage.ErrUsernameTaken):
		helpers.Error(w, http.StatusConflict, "Имя пользователя уже занято")
	default:
		helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}
