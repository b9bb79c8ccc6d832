// Package memory is an in-process store used with STORE=memory and in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/google/uuid"
)

// Store backs both repositories so posts can join their author.
type Store struct {
	mu      sync.RWMutex
	users   map[string]models.User // by id
	byEmail map[string]string      // email -> id
	posts   map[string]models.Post
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		posts:   make(map[string]models.Post),
		now:     time.Now,
	}
}

// WithClock replaces the timestamp source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Users() repository.Users { return (*users)(s) }
func (s *Store) Posts() repository.Posts { return (*posts)(s) }

type users Store

func (u *users) Create(_ context.Context, in models.User) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.byEmail[in.Email]; ok {
		return models.User{}, repository.ErrDuplicate
	}
	in.ID = uuid.NewString()
	u.users[in.ID] = in
	u.byEmail[in.Email] = in.ID
	return in, nil
}

func (u *users) GetByEmail(_ context.Context, email string) (models.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	id, ok := u.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u.users[id], nil
}

func (u *users) EmailExists(_ context.Context, email string) (bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.byEmail[email]
	return ok, nil
}

type posts Store

func (p *posts) Create(_ context.Context, in models.Post) (models.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[in.AuthorID]; !ok {
		return models.Post{}, repository.ErrReference
	}
	in.ID = uuid.NewString()
	in.CreatedAt = p.now()
	in.UpdatedAt = in.CreatedAt
	p.posts[in.ID] = in
	return in, nil
}

func (p *posts) GetByID(_ context.Context, id string) (models.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if got, ok := p.posts[id]; ok {
		return got, nil
	}
	return models.Post{}, repository.ErrNotFound
}

func (p *posts) Update(_ context.Context, id, title, content string) (models.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	got, ok := p.posts[id]
	if !ok {
		return models.Post{}, repository.ErrNotFound
	}
	got.Title = title
	got.Content = content
	got.UpdatedAt = p.now()
	p.posts[id] = got
	return got, nil
}

func (p *posts) Delete(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(p.posts, id)
	return nil
}

func (p *posts) Page(_ context.Context, limit, offset int) ([]models.PostListItem, int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	all := make([]models.Post, 0, len(p.posts))
	for _, v := range p.posts {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	if offset < 0 || offset >= total {
		return []models.PostListItem{}, total, nil
	}
	end := min(offset+limit, total)
	out := make([]models.PostListItem, 0, end-offset)
	for _, v := range all[offset:end] {
		out = append(out, models.PostListItem{
			ID:         v.ID,
			Title:      v.Title,
			Content:    v.Content,
			CreatedAt:  v.CreatedAt,
			AuthorName: p.users[v.AuthorID].Login,
		})
	}
	return out, total, nil
}
