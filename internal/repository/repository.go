package repository

import (
	"time"

	"github.com/silsilah/bloglist-service/internal/models"
)

// Store provides persistence for users, sessions and blogs. Implementations
// must make every method atomic: concurrent IncrementLikes calls on the same
// blog must never lose an update.
type Store interface {
	// CreateUser stores a new user, assigning its ID.
	// Returns models.ErrUsernameTaken when the username exists.
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	FindUserByID(id string) (*models.User, error)

	// CreateSession stores a new session record, assigning its ID
	// unless one is set.
	CreateSession(session *models.Session) error
	FindSession(id string) (*models.Session, error)
	// DeleteSession is idempotent; deleting an unknown session is a no-op.
	DeleteSession(id string) error
	// DeleteExpiredSessions removes sessions past expiry at the given time
	// and reports how many were removed.
	DeleteExpiredSessions(now time.Time) (int, error)

	// CreateBlog stores a new blog with likes initialized to zero,
	// assigning its ID.
	CreateBlog(blog *models.Blog) error
	FindBlogByID(id string) (*models.Blog, error)
	// ListBlogs returns all blogs in creation order.
	ListBlogs() ([]*models.Blog, error)
	// IncrementLikes atomically adds one like and returns the updated blog.
	IncrementLikes(id string) (*models.Blog, error)
	DeleteBlog(id string) error

	// Reset removes all users, sessions and blogs. Testing configurations only.
	Reset() error
	Close() error
}
