package auth

import "github.com/silsilah/bloglist-service/internal/models"

// CanDelete reports whether the requester may delete the blog. Both the
// delete endpoint and the isOwner flag on list responses go through this
// predicate so the two can never disagree.
func CanDelete(blog *models.Blog, requesterID string) bool {
	if blog == nil || requesterID == "" {
		return false
	}
	return blog.CreatorID == requesterID
}
