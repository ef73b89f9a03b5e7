package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushRecentPrepends(t *testing.T) {
	ids := pushRecent([]int64{3, 2, 1}, 4)
	assert.Equal(t, []int64{4, 3, 2, 1}, ids)
}

func TestPushRecentDeduplicates(t *testing.T) {
	// Re-viewing moves the id to the front rather than duplicating it.
	ids := pushRecent([]int64{3, 2, 1}, 2)
	assert.Equal(t, []int64{2, 3, 1}, ids)

	ids = pushRecent([]int64{3, 2, 1}, 3)
	assert.Equal(t, []int64{3, 2, 1}, ids)
}

func TestPushRecentCapacity(t *testing.T) {
	full := []int64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}

	ids := pushRecent(full, 11)
	assert.Len(t, ids, recentCapacity)
	assert.Equal(t, int64(11), ids[0])
	// The oldest entry falls off the end.
	assert.NotContains(t, ids, int64(1))
}

func TestPushRecentEmpty(t *testing.T) {
	assert.Equal(t, []int64{7}, pushRecent(nil, 7))
}
