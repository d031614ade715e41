package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"triphita/internal/logger"
	"triphita/internal/models"
	"triphita/internal/services"
	helpers "triphita/internal/utils/helpers"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register godoc
// @Summary Зарегистрировать пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param input body models.RegisterRequest true "Данные пользователя"
// @Success 201 {object} models.User
// @Failure 400 {object} helpers.Response
// @Failure 409 {object} helpers.Response "Имя пользователя уже занято"
// @Router /api/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при регистрации", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	created, err := h.userService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, created)
}
