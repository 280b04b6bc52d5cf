// Package ranking orders community posts at read time. Nothing here is
// cached or precomputed; every listing recomputes scores from the post
// counters. The hot-score constants are product tuning values carried
// over unchanged, not an algorithmic contract.
package ranking

import (
	"sort"
	"time"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
)

// Sort modes accepted by the post listing endpoint
const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortHot     = "hot"
)

const (
	// hotDecayWindowMs is the linear decay horizon (48h)
	hotDecayWindowMs = 172800000.0
	// hotDecayFloor is the minimum decay multiplier for old posts
	hotDecayFloor = 0.1
	// hotFreshWindowMs is the age below which the flat bonus applies (6h)
	hotFreshWindowMs = 21600000.0
	// hotFreshBonus is the flat score bonus for fresh posts
	hotFreshBonus = 5.0
)

// IsValidSort reports whether mode is a recognized sort mode
func IsValidSort(mode string) bool {
	return mode == SortRecent || mode == SortPopular || mode == SortHot
}

// PopularScore is net engagement: likes minus dislikes
func PopularScore(p *models.Post) int {
	return p.LikesCount - p.DislikesCount
}

// HotScore is a recency-decayed engagement score:
// (likes + 2*comments + views/10) * max(0.1, 1 - age/48h), plus a flat +5
// when the post is younger than six hours.
func HotScore(p *models.Post, now time.Time) float64 {
	ageMs := float64(now.Sub(p.CreatedAt).Milliseconds())
	decay := 1.0 - ageMs/hotDecayWindowMs
	if decay < hotDecayFloor {
		decay = hotDecayFloor
	}
	engagement := float64(p.LikesCount) + 2.0*float64(p.CommentsCount) + float64(p.ViewsCount)/10.0
	score := engagement * decay
	if ageMs < hotFreshWindowMs {
		score += hotFreshBonus
	}
	return score
}

// SortPosts orders posts in place for the given mode. Recent is newest
// first; popular and hot order by score descending with the tie-breaks
// the product defines.
func SortPosts(posts []models.Post, mode string, now time.Time) {
	switch mode {
	case SortPopular:
		sort.SliceStable(posts, func(i, j int) bool {
			a, b := &posts[i], &posts[j]
			if sa, sb := PopularScore(a), PopularScore(b); sa != sb {
				return sa > sb
			}
			if a.LikesCount != b.LikesCount {
				return a.LikesCount > b.LikesCount
			}
			if a.CommentsCount != b.CommentsCount {
				return a.CommentsCount > b.CommentsCount
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
	case SortHot:
		sort.SliceStable(posts, func(i, j int) bool {
			a, b := &posts[i], &posts[j]
			if sa, sb := HotScore(a, now), HotScore(b, now); sa != sb {
				return sa > sb
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}

// Page slices a ranked post list for 1-based pagination
func Page(posts []models.Post, page, limit int) []models.Post {
	start := (page - 1) * limit
	if start >= len(posts) {
		return []models.Post{}
	}
	end := start + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}
