package analysis

import (
	"sort"

	"sentiment-pulse/internal/domain"
)

const DefaultRecentCount = 30

// Recent returns up to n posts, newest first. Ties keep input order.
func Recent(posts []domain.LabeledPost, n int) []domain.LabeledPost {
	if n <= 0 {
		n = DefaultRecentCount
	}
	sorted := make([]domain.LabeledPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
