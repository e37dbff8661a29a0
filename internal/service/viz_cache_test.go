package service

import (
	"fmt"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The invalidation patterns must cover the exact keys the aggregates are
// stored under, for any viewer and selector, and nothing of other sets.
func TestVizInvalidationPatternsCoverCacheKeys(t *testing.T) {
	patterns := VizInvalidationPatterns(7, 3)
	require.Len(t, patterns, 2)

	qstatsKey := fmt.Sprintf("viz:qstats:%d:%d:%s", 42, 7, "first")
	ascoreKey := fmt.Sprintf("viz:ascore:%d:%d", 42, 3)

	ok, err := path.Match(patterns[0], qstatsKey)
	require.NoError(t, err)
	assert.True(t, ok, "question stats key must match")

	ok, err = path.Match(patterns[1], ascoreKey)
	require.NoError(t, err)
	assert.True(t, ok, "assessment score key must match")

	otherSet, err := path.Match(patterns[0], fmt.Sprintf("viz:qstats:%d:%d:%s", 42, 71, "last"))
	require.NoError(t, err)
	assert.False(t, otherSet, "other sets keep their cache")

	otherAssessment, err := path.Match(patterns[1], fmt.Sprintf("viz:ascore:%d:%d", 42, 30))
	require.NoError(t, err)
	assert.False(t, otherAssessment, "other assessments keep their cache")
}

func TestVizCacheNilClientIsNoop(t *testing.T) {
	c := NewVizCache(nil)
	c.Set("viz:qstats:1:1:first", []int{1, 2})

	var out []int
	assert.False(t, c.Get("viz:qstats:1:1:first", &out))
	c.InvalidateSet(1, 1)

	var nilCache *VizCache
	assert.False(t, nilCache.Get("k", &out))
	nilCache.Set("k", 1)
	nilCache.InvalidateSet(1, 1)
}
