package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silsilah/bloglist-service/internal/models"
)

func TestMemory_CreateUser(t *testing.T) {
	store := NewMemory()

	user := &models.User{Username: "silsilah", Name: "Test User", PasswordHash: "hash"}
	require.NoError(t, store.CreateUser(user))
	assert.NotEmpty(t, user.ID)

	found, err := store.FindUserByUsername("silsilah")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := store.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "silsilah", byID.Username)
}

func TestMemory_CreateUser_Duplicate(t *testing.T) {
	store := NewMemory()

	require.NoError(t, store.CreateUser(&models.User{Username: "silsilah", Name: "Test User"}))
	err := store.CreateUser(&models.User{Username: "silsilah", Name: "Someone Else"})
	assert.ErrorIs(t, err, models.ErrUsernameTaken)
}

func TestMemory_FindUser_Unknown(t *testing.T) {
	store := NewMemory()

	_, err := store.FindUserByUsername("nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.FindUserByID("no-such-id")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemory_Sessions(t *testing.T) {
	store := NewMemory()
	now := time.Now()

	session := &models.Session{UserID: "user-1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.CreateSession(session))
	require.NotEmpty(t, session.ID)

	found, err := store.FindSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.UserID)

	// delete is idempotent
	require.NoError(t, store.DeleteSession(session.ID))
	require.NoError(t, store.DeleteSession(session.ID))
	_, err = store.FindSession(session.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemory_DeleteExpiredSessions(t *testing.T) {
	store := NewMemory()
	now := time.Now()

	live := &models.Session{UserID: "user-1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &models.Session{UserID: "user-1", IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, store.CreateSession(live))
	require.NoError(t, store.CreateSession(stale))

	removed, err := store.DeleteExpiredSessions(now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.FindSession(live.ID)
	assert.NoError(t, err)
	_, err = store.FindSession(stale.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemory_Blogs_CreationOrder(t *testing.T) {
	store := NewMemory()

	for _, title := range []string{"First Blog", "Second Blog", "Third Blog"} {
		require.NoError(t, store.CreateBlog(&models.Blog{Title: title, Author: "Author", URL: "https://blog.test", CreatorID: "user-1"}))
	}

	blogs, err := store.ListBlogs()
	require.NoError(t, err)
	require.Len(t, blogs, 3)
	assert.Equal(t, "First Blog", blogs[0].Title)
	assert.Equal(t, "Second Blog", blogs[1].Title)
	assert.Equal(t, "Third Blog", blogs[2].Title)
}

func TestMemory_CreateBlog_LikesStartAtZero(t *testing.T) {
	store := NewMemory()

	blog := &models.Blog{Title: "Blog", Author: "Author", URL: "https://blog.test", CreatorID: "user-1", Likes: 42}
	require.NoError(t, store.CreateBlog(blog))
	assert.Equal(t, 0, blog.Likes)
}

func TestMemory_IncrementLikes_Concurrent(t *testing.T) {
	store := NewMemory()
	blog := &models.Blog{Title: "Likeable Blog", Author: "Liker", URL: "https://likeblog.com", CreatorID: "user-1"}
	require.NoError(t, store.CreateBlog(blog))

	const likers = 100
	var wg sync.WaitGroup
	for i := 0; i < likers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IncrementLikes(blog.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := store.FindBlogByID(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, likers, found.Likes)
}

func TestMemory_IncrementLikes_Unknown(t *testing.T) {
	store := NewMemory()

	_, err := store.IncrementLikes("no-such-blog")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemory_DeleteBlog(t *testing.T) {
	store := NewMemory()
	blog := &models.Blog{Title: "Blog", Author: "Author", URL: "https://blog.test", CreatorID: "user-1"}
	require.NoError(t, store.CreateBlog(blog))

	require.NoError(t, store.DeleteBlog(blog.ID))
	_, err := store.FindBlogByID(blog.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	blogs, err := store.ListBlogs()
	require.NoError(t, err)
	assert.Empty(t, blogs)

	assert.ErrorIs(t, store.DeleteBlog(blog.ID), models.ErrNotFound)
}

func TestMemory_ListReturnsCopies(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.CreateBlog(&models.Blog{Title: "Blog", Author: "Author", URL: "https://blog.test", CreatorID: "user-1"}))

	blogs, err := store.ListBlogs()
	require.NoError(t, err)
	blogs[0].Likes = 99

	again, err := store.ListBlogs()
	require.NoError(t, err)
	assert.Equal(t, 0, again[0].Likes)
}

func TestMemory_Reset(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.CreateUser(&models.User{Username: "silsilah", Name: "Test User"}))
	require.NoError(t, store.CreateSession(&models.Session{UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.CreateBlog(&models.Blog{Title: "Blog", Author: "Author", URL: "https://blog.test", CreatorID: "user-1"}))

	require.NoError(t, store.Reset())

	_, err := store.FindUserByUsername("silsilah")
	assert.ErrorIs(t, err, models.ErrNotFound)
	blogs, err := store.ListBlogs()
	require.NoError(t, err)
	assert.Empty(t, blogs)

	// the store is usable after a reset
	require.NoError(t, store.CreateUser(&models.User{Username: "silsilah", Name: "Test User"}))
}
