package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tasktracker/tasktracker-go/internal/cache"
	"github.com/tasktracker/tasktracker-go/internal/clock"
	"github.com/tasktracker/tasktracker-go/internal/model"
	"github.com/tasktracker/tasktracker-go/internal/repository"
)

const listLoadTimeout = 5 * time.Second

// PostService handles task creation, listing and removal.
type PostService struct {
	posts *repository.PostRepository
	users *repository.UserRepository
	cache *cache.PostCache
	clock clock.Clock
	sf    singleflight.Group
}

// NewPostService creates a PostService. If c is nil, caching is disabled.
func NewPostService(posts *repository.PostRepository, users *repository.UserRepository, c *cache.PostCache, clk clock.Clock) *PostService {
	return &PostService{posts: posts, users: users, cache: c, clock: clk}
}

// Create stores a post owned by the user with form.Login. Empty title and
// description are accepted.
func (s *PostService) Create(ctx context.Context, form model.CreatePostForm) (*model.Post, error) {
	if err := validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	owner, err := s.users.GetByLogin(ctx, form.Login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: owner %q does not exist", ErrConstraintViolation, form.Login)
		}
		return nil, err
	}

	post := &model.Post{
		Title:       form.Title,
		Description: form.Description,
		PostedAt:    s.clock.NowUTC(),
		OwnerID:     owner.ID,
		OwnerLogin:  owner.Login,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("%w: owner %q does not exist", ErrConstraintViolation, form.Login)
		}
		return nil, err
	}

	s.invalidateCache(ctx)
	return post, nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	if s.cache == nil {
		return s.posts.ListRecent(ctx)
	}

	// The generation is read before the database so a write that lands
	// during the load retires whatever this call stores.
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		slog.Warn("post cache generation read failed", "error", err)
		return s.posts.ListRecent(ctx)
	}

	ch := s.sf.DoChan("recent:"+strconv.FormatInt(gen, 10), func() (interface{}, error) {
		// Shared by every joined caller, so no single caller may cancel it.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listLoadTimeout)
		defer cancel()
		return s.loadRecent(loadCtx, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]model.Post), nil
	}
}

func (s *PostService) loadRecent(ctx context.Context, gen int64) ([]model.Post, error) {
	cached, err := s.cache.GetRecent(ctx, gen)
	if err != nil {
		slog.Warn("post cache read failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	posts, err := s.posts.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetRecent(ctx, gen, posts); err != nil {
		slog.Warn("post cache write failed", "error", err)
	}
	return posts, nil
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, ErrNotFound
	}
	return post, err
}

// Delete removes a post. Any caller may delete any post.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	err := s.posts.Delete(ctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *PostService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("post cache invalidation failed", "error", err)
	}
}
