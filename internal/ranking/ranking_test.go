package ranking

import (
	"testing"
	"time"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func post(likes, dislikes, comments, views int, createdAt time.Time) models.Post {
	return models.Post{
		LikesCount:    likes,
		DislikesCount: dislikes,
		CommentsCount: comments,
		ViewsCount:    views,
		CreatedAt:     createdAt,
	}
}

func TestPopularSortTieBreakByLikes(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	posts := []models.Post{
		post(8, 0, 1, 0, t0),
		post(5, 0, 0, 0, t0),
		post(10, 2, 5, 0, t0),
	}

	SortPosts(posts, SortPopular, t0)

	// (10,2) and (8,0) both score 8; more raw likes wins the tie
	assert.Equal(t, 10, posts[0].LikesCount)
	assert.Equal(t, 8, posts[1].LikesCount)
	assert.Equal(t, 5, posts[2].LikesCount)
}

func TestPopularSortTieBreakByComments(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	posts := []models.Post{
		post(6, 0, 1, 0, t0),
		post(6, 0, 9, 0, t0),
	}

	SortPosts(posts, SortPopular, t0)

	assert.Equal(t, 9, posts[0].CommentsCount)
	assert.Equal(t, 1, posts[1].CommentsCount)
}

func TestHotScoreFreshEmptyPost(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := post(0, 0, 0, 0, now.Add(-1*time.Hour))

	// zero engagement decays to zero; only the under-6h bonus remains
	assert.InDelta(t, 5.0, HotScore(&p, now), 1e-9)
}

func TestHotScoreDecayFloor(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := post(100, 0, 0, 0, now.Add(-50*time.Hour))

	// 50h is past the 48h window; the decay multiplier bottoms out at 0.1
	assert.InDelta(t, 10.0, HotScore(&p, now), 1e-9)
}

func TestHotSortOldEngagedBeatsFreshEmpty(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	fresh := post(0, 0, 0, 0, now.Add(-1*time.Hour))
	old := post(100, 0, 0, 0, now.Add(-50*time.Hour))
	posts := []models.Post{fresh, old}

	SortPosts(posts, SortHot, now)

	// 100 * 0.1 = 10 beats the flat +5 freshness bonus
	assert.Equal(t, 100, posts[0].LikesCount)
	assert.Equal(t, 0, posts[1].LikesCount)
}

func TestHotScoreCommentsAndViewsWeights(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := post(1, 0, 2, 50, now)

	// (1 + 2*2 + 50/10) * 1.0 + 5 = 15
	assert.InDelta(t, 15.0, HotScore(&p, now), 1e-9)
}

func TestRecentSortNewestFirst(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	posts := []models.Post{
		post(0, 0, 0, 0, now.Add(-3*time.Hour)),
		post(0, 0, 0, 0, now.Add(-1*time.Hour)),
		post(0, 0, 0, 0, now.Add(-2*time.Hour)),
	}

	SortPosts(posts, SortRecent, now)

	assert.Equal(t, now.Add(-1*time.Hour), posts[0].CreatedAt)
	assert.Equal(t, now.Add(-2*time.Hour), posts[1].CreatedAt)
	assert.Equal(t, now.Add(-3*time.Hour), posts[2].CreatedAt)
}

func TestPage(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		post(1, 0, 0, 0, now), post(2, 0, 0, 0, now), post(3, 0, 0, 0, now),
	}

	assert.Len(t, Page(posts, 1, 2), 2)
	assert.Len(t, Page(posts, 2, 2), 1)
	assert.Empty(t, Page(posts, 3, 2))
}

func TestIsValidSort(t *testing.T) {
	assert.True(t, IsValidSort(SortRecent))
	assert.True(t, IsValidSort(SortPopular))
	assert.True(t, IsValidSort(SortHot))
	assert.False(t, IsValidSort("trending"))
}
