package handler

import (
	"errors"
	"net/http"

	"github.com/tasktracker/tasktracker-go/internal/flash"
	"github.com/tasktracker/tasktracker-go/internal/model"
	"github.com/tasktracker/tasktracker-go/internal/service"
	"github.com/tasktracker/tasktracker-go/internal/view"
)

const (
	msgUserExists       = "User already exists"
	msgCheckInput       = "Check that the entered data is correct"
	msgPasswordMismatch = "Passwords do not match"
	msgUserNotFound     = "User does not exist"
	msgWrongPassword    = "Incorrect password"
	msgRegistered       = "Registration successful, please log in"
	msgSomethingFailed  = "Something went wrong, please try again"
)

// AuthHandler handles the registration and login pages.
type AuthHandler struct {
	pages
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, renderer view.Renderer, flashes *flash.Store) *AuthHandler {
	return &AuthHandler{pages: pages{renderer: renderer, flashes: flashes}, service: svc}
}

// HandleRegister handles GET and POST /register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, view.Register, view.Data{"Login": ""})
		return
	}
	if !parseForm(w, r) {
		return
	}

	form := model.RegisterForm{
		Login:     r.PostFormValue("login"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}

	_, err := h.service.Register(r.Context(), form)
	if err == nil {
		h.redirect(w, r, "/login", flash.Success(msgRegistered))
		return
	}

	var msg string
	switch {
	case errors.Is(err, service.ErrDuplicateUser):
		msg = msgUserExists
	case errors.Is(err, service.ErrInvalidInput):
		msg = msgCheckInput
	case errors.Is(err, service.ErrPasswordMismatch):
		msg = msgPasswordMismatch
	default:
		logError(r, "register failed", "error", err)
		msg = msgSomethingFailed
	}
	h.render(w, r, http.StatusOK, view.Register, view.Data{"Login": form.Login}, flash.Error(msg))
}

// HandleLogin handles GET and POST /login. A successful check leads to the
// task list; no session is kept.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, view.Login, view.Data{"Login": ""})
		return
	}
	if !parseForm(w, r) {
		return
	}

	form := model.LoginForm{
		Login:    r.PostFormValue("login"),
		Password: r.PostFormValue("password"),
	}

	_, err := h.service.Login(r.Context(), form)
	if err == nil {
		h.redirect(w, r, "/posts")
		return
	}

	var msg string
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		msg = msgUserNotFound
	case errors.Is(err, service.ErrWrongPassword):
		msg = msgWrongPassword
	default:
		logError(r, "login failed", "error", err)
		msg = msgSomethingFailed
	}
	h.render(w, r, http.StatusOK, view.Login, view.Data{"Login": form.Login}, flash.Error(msg))
}
