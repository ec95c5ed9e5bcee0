package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrDuplicateUser       = errors.New("user already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrUserNotFound        = errors.New("user not found")
	ErrWrongPassword       = errors.New("incorrect password")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotFound            = errors.New("not found")
)

var validate = validator.New()
