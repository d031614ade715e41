package helpers

import (
	"encoding/json"
	"net/http"

	"triphita/internal/models"
)

type Response struct {
	Data   interface{}         `json:"data,omitempty"`
	Error  string              `json:"error,omitempty"`
	Fields []models.FieldError `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: data, Error: ""})
	if err != nil {
		return
	}
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: nil, Error: errMsg})
	if err != nil {
		return
	}
}

// Validation — клиентская ошибка валидации со списком полей.
func Validation(w http.ResponseWriter, ve *models.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(Response{Error: "Ошибка валидации", Fields: ve.Fields})
	if err != nil {
		return
	}
}
