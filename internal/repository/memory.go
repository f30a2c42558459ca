package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/silsilah/bloglist-service/internal/models"
)

var _ Store = (*Memory)(nil)

// Memory is the default storage backend: mutex-guarded maps with blog
// creation order preserved so list results are deterministic.
type Memory struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	usernames map[string]string // username -> user id
	sessions  map[string]*models.Session
	blogs     map[string]*models.Blog
	blogOrder []string
}

// NewMemory initializes an empty in-memory store
func NewMemory() *Memory {
	m := &Memory{}
	m.init()
	return m
}

func (m *Memory) init() {
	m.users = make(map[string]*models.User)
	m.usernames = make(map[string]string)
	m.sessions = make(map[string]*models.Session)
	m.blogs = make(map[string]*models.Blog)
	m.blogOrder = nil
}

// CreateUser stores a new user, rejecting duplicate usernames
func (m *Memory) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.usernames[user.Username]; exists {
		return models.ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stored := *user
	m.users[stored.ID] = &stored
	m.usernames[stored.Username] = stored.ID
	return nil
}

// FindUserByUsername retrieves a user by username
func (m *Memory) FindUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.usernames[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	user := *m.users[id]
	return &user, nil
}

// FindUserByID retrieves a user by id
func (m *Memory) FindUserByID(id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// CreateSession stores a new session record
func (m *Memory) CreateSession(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	stored := *session
	m.sessions[stored.ID] = &stored
	return nil
}

// FindSession retrieves a session by id
func (m *Memory) FindSession(id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

// DeleteSession removes a session; unknown ids are a no-op
func (m *Memory) DeleteSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// DeleteExpiredSessions removes sessions past expiry at the given time
func (m *Memory) DeleteExpiredSessions(now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, session := range m.sessions {
		if session.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// CreateBlog stores a new blog with likes initialized to zero
func (m *Memory) CreateBlog(blog *models.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	blog.Likes = 0
	stored := *blog
	m.blogs[stored.ID] = &stored
	m.blogOrder = append(m.blogOrder, stored.ID)
	return nil
}

// FindBlogByID retrieves a blog by id
func (m *Memory) FindBlogByID(id string) (*models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blog, ok := m.blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *blog
	return &copied, nil
}

// ListBlogs returns all blogs in creation order
func (m *Memory) ListBlogs() ([]*models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blogs := make([]*models.Blog, 0, len(m.blogOrder))
	for _, id := range m.blogOrder {
		copied := *m.blogs[id]
		blogs = append(blogs, &copied)
	}
	return blogs, nil
}

// IncrementLikes adds one like under the write lock so concurrent calls
// never lose an update
func (m *Memory) IncrementLikes(id string) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog, ok := m.blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	blog.Likes++
	copied := *blog
	return &copied, nil
}

// DeleteBlog removes a blog permanently
func (m *Memory) DeleteBlog(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.blogs, id)
	for i, blogID := range m.blogOrder {
		if blogID == id {
			m.blogOrder = append(m.blogOrder[:i], m.blogOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Reset clears all collections
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	return nil
}

// Close is a no-op for the in-memory store
func (m *Memory) Close() error {
	return nil
}
