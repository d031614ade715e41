package models

import "time"

// Статусы публикации поста.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

type BlogPost struct {
	ID              int        `db:"id"               json:"id"`
	Title           string     `db:"title"            json:"title"`
	Content         string     `db:"content"          json:"content"`
	Excerpt         *string    `db:"excerpt"          json:"excerpt,omitempty"`
	Category        *string    `db:"category"         json:"category,omitempty"`
	Status          string     `db:"status"           json:"status"`
	FeaturedImage   *string    `db:"featured_image"   json:"featuredImage,omitempty"`
	MetaDescription *string    `db:"meta_description" json:"metaDescription,omitempty"`
	Tags            []string   `db:"-"                json:"tags"`
	PublishDate     *time.Time `db:"publish_date"     json:"publishDate,omitempty"`
	CreatedAt       time.Time  `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at"       json:"updatedAt"`
}

// swagger:model CreateBlogPostRequest
type CreateBlogPostRequest struct {
	Title           string   `json:"title"           example:"Поход по Доломитовым Альпам"`
	Content         string   `json:"content"         example:"<p>Маршрут, снаряжение, впечатления</p>"`
	Excerpt         string   `json:"excerpt"         example:"Короткое описание для превью"`
	Category        string   `json:"category"        example:"Путешествия"`
	Status          string   `json:"status"          example:"draft"`
	FeaturedImage   string   `json:"featuredImage"   example:"https://cdn.example.com/alps.jpg"`
	MetaDescription string   `json:"metaDescription"`
	Tags            []string `json:"tags"            example:"горы,треккинг"`
	PublishDate     string   `json:"publishDate"     example:"2025-07-01T10:00:00Z"`
}

// swagger:model UpdateBlogPostRequest
// Частичное обновление: nil — поле не трогаем.
type UpdateBlogPostRequest struct {
	Title           *string   `json:"title,omitempty"`
	Content         *string   `json:"content,omitempty"`
	Excerpt         *string   `json:"excerpt,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Status          *string   `json:"status,omitempty"`
	FeaturedImage   *string   `json:"featuredImage,omitempty"`
	MetaDescription *string   `json:"metaDescription,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	PublishDate     *string   `json:"publishDate,omitempty"`
}
