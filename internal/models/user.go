package models

type User struct {
	ID       int    `db:"id"       json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" example:"editor"`
	Password string `json:"password" example:"secret123"`
}
