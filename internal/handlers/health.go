package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"triphita/internal/logger"
	"triphita/internal/storage"
	helpers "triphita/internal/utils/helpers"
)

type HealthHandler struct {
	store storage.Storage
}

func NewHealthHandler(store storage.Storage) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz godoc
// @Summary Проверка живости сервиса и хранилища
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} helpers.Response
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		logger.WithCtx(r.Context()).Error("Хранилище недоступно", zap.Error(err))
		helpers.Error(w, http.StatusServiceUnavailable, "Хранилище недоступно")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
