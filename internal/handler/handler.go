package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/silsilah/bloglist-service/internal/config"
	"github.com/silsilah/bloglist-service/internal/integrations/feed"
	"github.com/silsilah/bloglist-service/internal/middleware"
	"github.com/silsilah/bloglist-service/internal/models"
	"github.com/silsilah/bloglist-service/internal/service"
)

// Handler translates HTTP requests into service calls
type Handler struct {
	svc  *service.Service
	feed *feed.Renderer
	log  *logrus.Logger
	cfg  *config.Config
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, feedRenderer *feed.Renderer, log *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{svc: svc, feed: feedRenderer, log: log, cfg: cfg}
}

// Router builds the API router. Mutating blog endpoints sit behind the auth
// middleware; the reset endpoint only exists when the testing API is enabled.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/users", h.Register).Methods("POST")
	api.HandleFunc("/login", h.Login).Methods("POST")
	api.HandleFunc("/logout", h.Logout).Methods("POST")
	api.HandleFunc("/blogs", h.ListBlogs).Methods("GET")
	api.HandleFunc("/blogs/feed", h.Feed).Methods("GET")

	// Protected routes
	authRouter := api.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(h.svc))
	authRouter.HandleFunc("/blogs", h.CreateBlog).Methods("POST")
	authRouter.HandleFunc("/blogs/{id}/like", h.LikeBlog).Methods("PUT")
	authRouter.HandleFunc("/blogs/{id}", h.DeleteBlog).Methods("DELETE")

	if h.cfg.TestingAPI {
		api.HandleFunc("/testing/reset", h.Reset).Methods("POST")
	}

	return r
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError().Add("body", "malformed JSON"))
		return
	}

	user, err := h.svc.Register(req.Username, req.Name, req.Password, req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError().Add("body", "malformed JSON"))
		return
	}

	result, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Logout revokes the presented session token; revoking an invalid token
// still succeeds
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Revoke(middleware.BearerToken(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBlogs returns all blogs ordered by likes descending. A valid token is
// optional; with one, each blog carries the caller's delete capability.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	viewerID := ""
	if token := middleware.BearerToken(r); token != "" {
		if userID, err := h.svc.Validate(token); err == nil {
			viewerID = userID
		}
	}

	blogs, err := h.svc.ListBlogs(viewerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, blogs)
}

// Feed serves the blog listing as RSS
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.svc.ListBlogs("")
	if err != nil {
		h.writeError(w, err)
		return
	}
	out, err := h.feed.Render(blogs)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(out)
}

// CreateBlog handles blog creation for the authenticated user
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Author string `json:"author"`
		URL    string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, models.NewValidationError().Add("body", "malformed JSON"))
		return
	}

	blog, err := h.svc.CreateBlog(middleware.UserID(r.Context()), req.Title, req.Author, req.URL)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, blog)
}

// LikeBlog adds one like to the blog in the path
func (h *Handler) LikeBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.svc.LikeBlog(mux.Vars(r)["id"], middleware.UserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, blog)
}

// DeleteBlog removes the blog in the path when the caller created it
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBlog(mux.Vars(r)["id"], middleware.UserID(r.Context())); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset clears all stored data. Only routed in testing configurations.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// writeError is the single place errors become status codes. Error messages
// reach the client verbatim; the uniform login failure message is part of
// the API contract.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  validation.Error(),
			"fields": validation.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrTokenInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUsernameTaken):
		status = http.StatusConflict
	default:
		h.log.Errorf("Internal error: %v", err)
		message = "internal server error"
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}
