package http

import (
	"context"
	"sync"
	"time"

	"github.com/Jindonglee/resume-board/internal/domain"
	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
	pkgkafka "github.com/Jindonglee/resume-board/pkg/kafka"
)

// fakeUserRepo is an in-memory user repository for handler tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.AlreadyExists("user", "email", user.Email)
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.NotFound("user", user.ID)
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return apperrors.NotFound("user", id)
	}
	delete(f.users, id)
	return nil
}

// fakeSessionStore is an in-memory session store. Setting failing makes
// every call return an Unavailable error, simulating an unreachable store.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
	failing  bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (f *fakeSessionStore) fail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = true
}

func (f *fakeSessionStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return apperrors.Unavailable("session store unreachable")
	}
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return "", apperrors.Unavailable("session store unreachable")
	}
	userID, ok := f.sessions[token]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return apperrors.Unavailable("session store unreachable")
	}
	delete(f.sessions, token)
	return nil
}

// fakePostRepo is an in-memory post repository for handler tests.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*domain.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePostRepo) List(_ context.Context, _, _ string) ([]domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := make([]domain.Post, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

func (f *fakePostRepo) Update(_ context.Context, id, userID, title, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok || p.UserID != userID {
		return apperrors.NotFound("post", id)
	}
	p.Title = title
	p.Content = content
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok || p.UserID != userID {
		return apperrors.NotFound("post", id)
	}
	delete(f.posts, id)
	return nil
}

// noopPublisher discards events.
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, *pkgkafka.Event) error {
	return nil
}
