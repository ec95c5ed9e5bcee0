package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktracker/tasktracker-go/internal/flash"
	"github.com/tasktracker/tasktracker-go/internal/model"
)

func TestHTMLRenderer_Pages(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	post := model.Post{ID: 7, Title: "Groceries", Description: "milk, eggs", OwnerLogin: "alice",
		PostedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)}

	tests := []struct {
		name     string
		status   int
		data     Data
		contains []string
	}{
		{Index, http.StatusOK, Data{}, []string{`href="/register"`, `href="/posts"`}},
		{Register, http.StatusOK, Data{"Login": "bob", "Flashes": []flash.Message{flash.Error("Passwords do not match")}},
			[]string{`name="password2"`, `value="bob"`, `flash-error`, "Passwords do not match"}},
		{Login, http.StatusOK, Data{"Login": ""}, []string{`action="/login"`}},
		{ToDoList, http.StatusOK, Data{}, []string{`name="title"`, `name="description"`, `name="login"`}},
		{Posts, http.StatusOK, Data{"Posts": []model.Post{post}},
			[]string{`href="/posts/7"`, "Groceries", "alice, 2024-05-01 10:30", `href="/posts/7/del"`}},
		{Posts, http.StatusOK, Data{"Posts": []model.Post{}}, []string{"No tasks yet."}},
		{PostDetail, http.StatusOK, Data{"Post": &post}, []string{"<h1>Groceries</h1>", "milk, eggs"}},
		{PostDetail, http.StatusNotFound, Data{"Post": (*model.Post)(nil), "NotFound": true}, []string{"Task not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, r.Render(rec, tt.status, tt.name, tt.data))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestHTMLRenderer_EscapesUserInput(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, Posts, Data{
		"Posts": []model.Post{{ID: 1, Title: "<script>alert(1)</script>"}},
	}))
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestHTMLRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(httptest.NewRecorder(), http.StatusOK, "missing.html", nil))
}
