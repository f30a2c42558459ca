package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/silsilah/bloglist-service/internal/auth"
	"github.com/silsilah/bloglist-service/internal/config"
	"github.com/silsilah/bloglist-service/internal/models"
	"github.com/silsilah/bloglist-service/internal/repository"
	"github.com/silsilah/bloglist-service/internal/utils/email"
)

// Service handles business logic
type Service struct {
	store  repository.Store
	tokens *auth.TokenManager
	mailer *email.Sender
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store repository.Store, tokens *auth.TokenManager, mailer *email.Sender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, tokens: tokens, mailer: mailer, log: log, config: cfg}
}

// LoginResult is the identity payload returned on successful login
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Register creates a new user with a hashed password. The plaintext is
// never stored.
func (s *Service) Register(username, name, password, emailAddr string) (*models.User, error) {
	v := models.NewValidationError()
	if username == "" {
		v.Add("username", "must not be empty")
	}
	if name == "" {
		v.Add("name", "must not be empty")
	}
	if password == "" {
		v.Add("password", "must not be empty")
	}
	if !v.Empty() {
		return nil, v
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Name:         name,
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	if s.mailer != nil && s.mailer.Enabled() && user.Email != "" {
		go func() {
			if err := s.mailer.SendWelcome(user.Email, user.Name, user.Username); err != nil {
				s.log.Errorf("Welcome email for %s not delivered: %v", user.Username, err)
			}
		}()
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and issues a session token. Unknown usernames
// and wrong passwords fail with the identical error so usernames cannot be
// enumerated.
func (s *Service) Login(username, password string) (*LoginResult, error) {
	user, err := s.store.FindUserByUsername(username)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.SessionTTL),
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.tokens.Issue(session)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return &LoginResult{Token: token, Username: user.Username, Name: user.Name}, nil
}

// Validate resolves a token to the user id it is bound to. Tokens whose
// session record is gone or expired are rejected, so logout takes effect
// before the signature expiry.
func (s *Service) Validate(token string) (string, error) {
	sessionID, userID, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}

	session, err := s.store.FindSession(sessionID)
	if err != nil {
		return "", models.ErrTokenInvalid
	}
	if session.UserID != userID {
		return "", models.ErrTokenInvalid
	}
	if session.Expired(time.Now()) {
		if err := s.store.DeleteSession(session.ID); err != nil {
			s.log.Errorf("Failed to drop expired session %s: %v", session.ID, err)
		}
		return "", models.ErrTokenInvalid
	}

	return session.UserID, nil
}

// Revoke invalidates the session behind a token. Revoking an already
// invalid token is a no-op.
func (s *Service) Revoke(token string) error {
	sessionID, _, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.store.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions drops sessions past expiry. Wired to the cron
// scheduler in main.
func (s *Service) PurgeExpiredSessions() {
	removed, err := s.store.DeleteExpiredSessions(time.Now())
	if err != nil {
		s.log.Errorf("Session sweep failed: %v", err)
		return
	}
	if removed > 0 {
		s.log.Infof("Session sweep removed %d expired sessions", removed)
	}
}

// CreateBlog creates a blog owned by the given user, with likes at zero
func (s *Service) CreateBlog(creatorID, title, author, url string) (*models.BlogView, error) {
	v := models.NewValidationError()
	if title == "" {
		v.Add("title", "must not be empty")
	}
	if author == "" {
		v.Add("author", "must not be empty")
	}
	if url == "" {
		v.Add("url", "must not be empty")
	}
	if !v.Empty() {
		return nil, v
	}

	blog := &models.Blog{
		Title:     title,
		Author:    author,
		URL:       url,
		CreatorID: creatorID,
	}
	if err := s.store.CreateBlog(blog); err != nil {
		return nil, err
	}

	s.log.Infof("Blog created by %s: %s", creatorID, blog.Title)
	return s.view(blog, creatorID), nil
}

// ListBlogs returns all blogs ordered by likes descending. When viewerID is
// non-empty each entry carries the viewer's delete capability.
func (s *Service) ListBlogs(viewerID string) ([]*models.BlogView, error) {
	blogs, err := s.store.ListBlogs()
	if err != nil {
		return nil, err
	}
	ordered := OrderByLikesDesc(blogs)

	views := make([]*models.BlogView, 0, len(ordered))
	for _, blog := range ordered {
		views = append(views, s.view(blog, viewerID))
	}
	return views, nil
}

// LikeBlog adds one like to a blog on behalf of any authenticated user
func (s *Service) LikeBlog(blogID, viewerID string) (*models.BlogView, error) {
	blog, err := s.store.IncrementLikes(blogID)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Blog liked: %s (%d likes)", blog.ID, blog.Likes)
	return s.view(blog, viewerID), nil
}

// DeleteBlog removes a blog when the requester is its creator
func (s *Service) DeleteBlog(blogID, requesterID string) error {
	blog, err := s.store.FindBlogByID(blogID)
	if err != nil {
		return err
	}
	if !auth.CanDelete(blog, requesterID) {
		return models.ErrForbidden
	}
	if err := s.store.DeleteBlog(blogID); err != nil {
		return err
	}
	s.log.Infof("Blog deleted by %s: %s", requesterID, blog.Title)
	return nil
}

// Reset clears all stored users, sessions and blogs. Only reachable when
// the testing API is enabled.
func (s *Service) Reset() error {
	if err := s.store.Reset(); err != nil {
		return err
	}
	s.log.Warn("Storage reset")
	return nil
}

// view builds the response shape for a blog: creator display identity plus
// the viewer's delete capability, both derived from the same guard the
// delete path uses.
func (s *Service) view(blog *models.Blog, viewerID string) *models.BlogView {
	view := &models.BlogView{
		Blog:    *blog,
		IsOwner: auth.CanDelete(blog, viewerID),
	}
	creator, err := s.store.FindUserByID(blog.CreatorID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.log.Errorf("Failed to resolve creator %s: %v", blog.CreatorID, err)
		}
		return view
	}
	view.User = creator.Ref()
	return view
}
