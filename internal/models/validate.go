package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// столько помещается в varchar(100) колонки category
const maxCategoryLen = 100

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError — ошибка валидации входных данных.
// Всегда клиентская (400), никогда не серверная.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate проверяет payload создания поста и выставляет дефолты
// (status=draft). Возвращает *ValidationError либо nil.
func (r *CreateBlogPostRequest) Validate() error {
	var v ValidationError

	if strings.TrimSpace(r.Title) == "" {
		v.add("title", "заголовок обязателен")
	}
	if strings.TrimSpace(r.Content) == "" {
		v.add("content", "контент обязателен")
	}
	if r.Status == "" {
		r.Status = StatusDraft
	} else if !IsValidStatus(r.Status) {
		v.add("status", "допустимые значения: draft, published, scheduled")
	}
	if utf8.RuneCountInString(r.Category) > maxCategoryLen {
		v.add("category", "категория не длиннее 100 символов")
	}
	if r.PublishDate != "" {
		if _, err := time.Parse(time.RFC3339, r.PublishDate); err != nil {
			v.add("publishDate", "ожидается дата в формате ISO-8601")
		}
	}

	return v.orNil()
}

// Validate проверяет частичный payload обновления: отсутствие поля —
// «не менять», но присланное поле обязано удовлетворять правилам создания.
func (r *UpdateBlogPostRequest) Validate() error {
	var v ValidationError

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		v.add("title", "заголовок не может быть пустым")
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		v.add("content", "контент не может быть пустым")
	}
	if r.Status != nil && !IsValidStatus(*r.Status) {
		v.add("status", "допустимые значения: draft, published, scheduled")
	}
	if r.Category != nil && utf8.RuneCountInString(*r.Category) > maxCategoryLen {
		v.add("category", "категория не длиннее 100 символов")
	}
	if r.PublishDate != nil && *r.PublishDate != "" {
		if _, err := time.Parse(time.RFC3339, *r.PublishDate); err != nil {
			v.add("publishDate", "ожидается дата в формате ISO-8601")
		}
	}

	return v.orNil()
}

// Validate проверяет payload регистрации пользователя.
func (r *RegisterRequest) Validate() error {
	var v ValidationError

	if strings.TrimSpace(r.Username) == "" {
		v.add("username", "имя пользователя обязательно")
	}
	if r.Password == "" {
		v.add("password", "пароль обязателен")
	}

	return v.orNil()
}
