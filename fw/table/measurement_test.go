package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A miss on the exact name walks up toward the root and returns the
// nearest ancestor record of the requested type.
func TestMeasurementAccessorWalksUpToAncestor(t *testing.T) {
	acc := NewMeasurementAccessor()
	acc.Insert("/a", 1012, "record-at-a")

	prefix, record, ok := acc.FindLongestPrefixMatch("/a/b/c", 1012)
	assert.True(t, ok)
	assert.Equal(t, "/a", prefix)
	assert.Equal(t, "record-at-a", record)
}

// A deeper record shadows a shallower one for names beneath it.
func TestMeasurementAccessorPrefersDeepestRecord(t *testing.T) {
	acc := NewMeasurementAccessor()
	acc.Insert("/a", 1012, "record-at-a")
	acc.Insert("/a/b", 1012, "record-at-ab")

	prefix, record, ok := acc.FindLongestPrefixMatch("/a/b/c", 1012)
	assert.True(t, ok)
	assert.Equal(t, "/a/b", prefix)
	assert.Equal(t, "record-at-ab", record)

	prefix, record, ok = acc.FindLongestPrefixMatch("/a/x", 1012)
	assert.True(t, ok)
	assert.Equal(t, "/a", prefix)
	assert.Equal(t, "record-at-a", record)
}

// Records of a different type-id never satisfy a lookup, even along the
// same name.
func TestMeasurementAccessorDiscriminatesByTypeId(t *testing.T) {
	acc := NewMeasurementAccessor()
	acc.Insert("/a", 1012, "strategy-record")

	_, _, ok := acc.FindLongestPrefixMatch("/a/b", 9999)
	assert.False(t, ok)

	acc.Insert("/a", 9999, "other-record")
	_, record, ok := acc.FindLongestPrefixMatch("/a/b", 9999)
	assert.True(t, ok)
	assert.Equal(t, "other-record", record)
}

func TestMeasurementAccessorMissReturnsFalse(t *testing.T) {
	acc := NewMeasurementAccessor()
	_, _, ok := acc.FindLongestPrefixMatch("/nothing/here", 1012)
	assert.False(t, ok)
}
