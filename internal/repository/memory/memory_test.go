package memory

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first, err := s.Users().Create(ctx, models.User{Email: "x@x.com", Login: "first", PasswordHash: "h1"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = s.Users().Create(ctx, models.User{Email: "x@x.com", Login: "second", PasswordHash: "h2"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := s.Users().GetByEmail(ctx, "x@x.com")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestPosts_CRUD(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore().WithClock(func() time.Time { return clock })

	u, err := s.Users().Create(ctx, models.User{Email: "a@a.com", Login: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = s.Posts().Create(ctx, models.Post{Title: "T", Content: "c", AuthorID: "nobody"})
	require.ErrorIs(t, err, repository.ErrReference)

	p, err := s.Posts().Create(ctx, models.Post{Title: "Title", Content: "content", AuthorID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, clock, p.CreatedAt)

	clock = clock.Add(time.Minute)
	up, err := s.Posts().Update(ctx, p.ID, "Other", "other content")
	require.NoError(t, err)
	assert.Equal(t, p.CreatedAt, up.CreatedAt)
	assert.Equal(t, clock, up.UpdatedAt)
	assert.Equal(t, u.ID, up.AuthorID)

	require.NoError(t, s.Posts().Delete(ctx, p.ID))
	require.ErrorIs(t, s.Posts().Delete(ctx, p.ID), repository.ErrNotFound)
	_, err = s.Posts().GetByID(ctx, p.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPosts_PageNewestFirst(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore().WithClock(func() time.Time { return clock })

	u, err := s.Users().Create(ctx, models.User{Email: "a@a.com", Login: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	for i := 0; i < 25; i++ {
		clock = clock.Add(time.Second)
		_, err := s.Posts().Create(ctx, models.Post{Title: fmt.Sprintf("Post %02d", i), Content: "content", AuthorID: u.ID})
		require.NoError(t, err)
	}

	items, total, err := s.Posts().Page(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, items, 10)
	assert.Equal(t, "Post 24", items[0].Title)
	assert.Equal(t, "alice", items[0].AuthorName)

	items, _, err = s.Posts().Page(ctx, 10, 20)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "Post 00", items[4].Title)

	items, _, err = s.Posts().Page(ctx, 10, 30)
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, off := range []int{-10, math.MaxInt} {
		items, total, err = s.Posts().Page(ctx, 10, off)
		require.NoError(t, err, "offset %d", off)
		assert.Empty(t, items)
		assert.Equal(t, 25, total)
	}
}
