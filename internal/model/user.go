package model

import "time"

// User represents a registered account in the database.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterForm holds the fields submitted to /register.
type RegisterForm struct {
	Login     string `validate:"required,max=128"`
	Password  string `validate:"required"`
	Password2 string
}

// LoginForm holds the fields submitted to /login.
type LoginForm struct {
	Login    string
	Password string
}
