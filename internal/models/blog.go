package models

// Blog represents a published blog post
type Blog struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Likes     int    `json:"likes"`
	CreatorID string `json:"-"`
}

// BlogView is the response shape for a blog, carrying the creator's
// display identity and the caller's delete capability.
type BlogView struct {
	Blog
	User    *UserRef `json:"user,omitempty"`
	IsOwner bool     `json:"isOwner"`
}

// UserRef is the creator identity embedded in blog responses
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
