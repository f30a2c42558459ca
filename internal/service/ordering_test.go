package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silsilah/bloglist-service/internal/models"
)

func blogsWithLikes(likes ...int) []*models.Blog {
	blogs := make([]*models.Blog, 0, len(likes))
	for i, n := range likes {
		blogs = append(blogs, &models.Blog{ID: string(rune('a' + i)), Likes: n})
	}
	return blogs
}

func TestOrderByLikesDesc(t *testing.T) {
	ordered := OrderByLikesDesc(blogsWithLikes(2, 10, 5))

	require.Len(t, ordered, 3)
	assert.Equal(t, []int{10, 5, 2}, []int{ordered[0].Likes, ordered[1].Likes, ordered[2].Likes})
}

func TestOrderByLikesDesc_Stable(t *testing.T) {
	blogs := blogsWithLikes(3, 7, 3, 3)

	ordered := OrderByLikesDesc(blogs)

	require.Len(t, ordered, 4)
	assert.Equal(t, 7, ordered[0].Likes)
	// ties keep their input order
	assert.Equal(t, blogs[0].ID, ordered[1].ID)
	assert.Equal(t, blogs[2].ID, ordered[2].ID)
	assert.Equal(t, blogs[3].ID, ordered[3].ID)
}

func TestOrderByLikesDesc_InputUntouched(t *testing.T) {
	blogs := blogsWithLikes(1, 9)

	OrderByLikesDesc(blogs)

	assert.Equal(t, 1, blogs[0].Likes)
	assert.Equal(t, 9, blogs[1].Likes)
}

func TestOrderByLikesDesc_Empty(t *testing.T) {
	assert.Empty(t, OrderByLikesDesc(nil))
}
