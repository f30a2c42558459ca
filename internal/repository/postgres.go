package repository

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/silsilah/bloglist-service/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ Store = (*Postgres)(nil)

// Postgres provides database-backed storage
type Postgres struct {
	db *sql.DB
}

// NewPostgres initializes a postgres store and applies pending migrations
func NewPostgres(db *sql.DB) (*Postgres, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return &Postgres{db: db}, nil
}

// CreateUser creates a new user in the database
func (p *Postgres) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (id, username, name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := p.db.Exec(query, user.ID, user.Username, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return models.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (p *Postgres) FindUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, name, email, password_hash
		FROM users
		WHERE username = $1`
	err := p.db.QueryRow(query, username).
		Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (p *Postgres) FindUserByID(id string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, name, email, password_hash
		FROM users
		WHERE id = $1`
	err := p.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateSession creates a new session record in the database
func (p *Postgres) CreateSession(session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	query := `
		INSERT INTO sessions (id, user_id, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)`
	_, err := p.db.Exec(query, session.ID, session.UserID, session.IssuedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindSession retrieves a session by id
func (p *Postgres) FindSession(id string) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT id, user_id, issued_at, expires_at
		FROM sessions
		WHERE id = $1`
	err := p.db.QueryRow(query, id).
		Scan(&session.ID, &session.UserID, &session.IssuedAt, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session; unknown ids are a no-op
func (p *Postgres) DeleteSession(id string) error {
	if _, err := p.db.Exec(`DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past expiry at the given time
func (p *Postgres) DeleteExpiredSessions(now time.Time) (int, error) {
	res, err := p.db.Exec(`DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return int(removed), nil
}

// CreateBlog creates a new blog with likes initialized to zero
func (p *Postgres) CreateBlog(blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	blog.Likes = 0
	query := `
		INSERT INTO blogs (id, title, author, url, likes, creator_id)
		VALUES ($1, $2, $3, $4, 0, $5)`
	_, err := p.db.Exec(query, blog.ID, blog.Title, blog.Author, blog.URL, blog.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// FindBlogByID retrieves a blog by id
func (p *Postgres) FindBlogByID(id string) (*models.Blog, error) {
	blog := &models.Blog{}
	query := `
		SELECT id, title, author, url, likes, creator_id
		FROM blogs
		WHERE id = $1`
	err := p.db.QueryRow(query, id).
		Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.CreatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}
	return blog, nil
}

// ListBlogs returns all blogs in creation order
func (p *Postgres) ListBlogs() ([]*models.Blog, error) {
	query := `
		SELECT id, title, author, url, likes, creator_id
		FROM blogs
		ORDER BY created_at, id`
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*models.Blog
	for rows.Next() {
		blog := &models.Blog{}
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.CreatorID); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blogs: %w", err)
	}
	return blogs, nil
}

// IncrementLikes adds one like in a single statement so concurrent calls
// never lose an update
func (p *Postgres) IncrementLikes(id string) (*models.Blog, error) {
	blog := &models.Blog{}
	query := `
		UPDATE blogs
		SET likes = likes + 1
		WHERE id = $1
		RETURNING id, title, author, url, likes, creator_id`
	err := p.db.QueryRow(query, id).
		Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.CreatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment likes: %w", err)
	}
	return blog, nil
}

// DeleteBlog removes a blog permanently
func (p *Postgres) DeleteBlog(id string) error {
	res, err := p.db.Exec(`DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted blogs: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Reset clears all tables
func (p *Postgres) Reset() error {
	if _, err := p.db.Exec(`TRUNCATE blogs, sessions, users`); err != nil {
		return fmt.Errorf("failed to reset storage: %w", err)
	}
	return nil
}

// Close closes the underlying database handle
func (p *Postgres) Close() error {
	return p.db.Close()
}
