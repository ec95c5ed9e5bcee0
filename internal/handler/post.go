package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tasktracker/tasktracker-go/internal/flash"
	"github.com/tasktracker/tasktracker-go/internal/model"
	"github.com/tasktracker/tasktracker-go/internal/service"
	"github.com/tasktracker/tasktracker-go/internal/view"
)

const (
	msgTaskCreated  = "Task created"
	msgTaskDeleted  = "Task deleted"
	msgUnknownOwner = "No user with this login"
	msgDeleteFailed = "An error occurred while deleting the task"
)

// PostHandler handles task pages.
type PostHandler struct {
	pages
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, renderer view.Renderer, flashes *flash.Store) *PostHandler {
	return &PostHandler{pages: pages{renderer: renderer, flashes: flashes}, service: svc}
}

// HandleCreate handles GET and POST /list.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, view.ToDoList, view.Data{"Title": "", "Description": "", "Login": ""})
		return
	}
	if !parseForm(w, r) {
		return
	}

	form := model.CreatePostForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Login:       r.PostFormValue("login"),
	}

	_, err := h.service.Create(r.Context(), form)
	if err == nil {
		h.redirect(w, r, "/", flash.Success(msgTaskCreated))
		return
	}

	var msg string
	switch {
	case errors.Is(err, service.ErrConstraintViolation):
		msg = msgUnknownOwner
	case errors.Is(err, service.ErrInvalidInput):
		msg = msgCheckInput
	default:
		logError(r, "create post failed", "error", err)
		msg = msgSomethingFailed
	}
	data := view.Data{"Title": form.Title, "Description": form.Description, "Login": form.Login}
	h.render(w, r, http.StatusOK, view.ToDoList, data, flash.Error(msg))
}

// HandleList handles GET and POST /posts.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		logError(r, "list posts failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, view.Posts, view.Data{"Posts": posts})
}

// HandleView handles GET and POST /posts/{id}. A missing post renders the
// detail page in its not-found state.
func (h *PostHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.service.Get(r.Context(), id)
	switch {
	case err == nil:
		h.render(w, r, http.StatusOK, view.PostDetail, view.Data{"Post": post, "NotFound": false})
	case errors.Is(err, service.ErrNotFound):
		h.render(w, r, http.StatusNotFound, view.PostDetail, view.Data{"Post": (*model.Post)(nil), "NotFound": true})
	default:
		logError(r, "get post failed", "id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// HandleDelete handles GET and POST /posts/{id}/del.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	err := h.service.Delete(r.Context(), id)
	switch {
	case err == nil:
		h.redirect(w, r, "/posts", flash.Success(msgTaskDeleted))
	case errors.Is(err, service.ErrNotFound):
		http.NotFound(w, r)
	default:
		logError(r, "delete post failed", "id", id, "error", err)
		http.Error(w, msgDeleteFailed, http.StatusInternalServerError)
	}
}

// postID reads the {id} segment. The route pattern only admits digits, so a
// parse failure means the value overflowed.
func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}
