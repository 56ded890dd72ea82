package models

// User is a staff account. Users are provisioned out of band (bootstrap seed
// or cmd/useradd) and never created over HTTP.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"nome"`
	PasswordHash string `json:"-"` // Never expose in JSON
	IsAdmin      bool   `json:"admin"`
}

// LoginForm is the POST /login form body.
type LoginForm struct {
	Username string `form:"usuario" validate:"required"`
	Password string `form:"senha" validate:"required"`
}
