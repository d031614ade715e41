package models

type BlogPostStats struct {
	TotalPosts     int `json:"totalPosts"`
	PublishedPosts int `json:"publishedPosts"`
	DraftPosts     int `json:"draftPosts"`
	MonthlyPosts   int `json:"monthlyPosts"`
}
