package service

import (
	"sort"

	"github.com/silsilah/bloglist-service/internal/models"
)

// OrderByLikesDesc returns the blogs sorted by likes, most liked first.
// The sort is stable: blogs with equal likes keep their input order. The
// input slice is not modified.
func OrderByLikesDesc(blogs []*models.Blog) []*models.Blog {
	ordered := make([]*models.Blog, len(blogs))
	copy(ordered, blogs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Likes > ordered[j].Likes
	})
	return ordered
}
