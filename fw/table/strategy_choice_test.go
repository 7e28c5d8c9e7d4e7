package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A child name resolves to the parameter string bound to its longest
// matching prefix, and a deeper binding shadows a shallower one.
func TestStrategyChoiceFindEffectiveParameters(t *testing.T) {
	tbl := NewStrategyChoiceTable()
	tbl.Set("/a", "strategy-one", "maxdelay=100")
	tbl.Set("/a/b", "strategy-two", "maxloss=0.05")

	assert.Equal(t, "maxdelay=100", tbl.FindEffectiveParameters("/a/child"))
	assert.Equal(t, "maxloss=0.05", tbl.FindEffectiveParameters("/a/b/c/d"))
	assert.Equal(t, "", tbl.FindEffectiveParameters("/unbound"))
}

func TestStrategyChoiceFindEffectiveStrategy(t *testing.T) {
	tbl := NewStrategyChoiceTable()
	tbl.Set("/a", "strategy-one", "")
	tbl.Set("/a/b", "strategy-two", "")

	assert.Equal(t, "strategy-one", tbl.FindEffectiveStrategy("/a/x"))
	assert.Equal(t, "strategy-two", tbl.FindEffectiveStrategy("/a/b"))
	assert.Equal(t, "", tbl.FindEffectiveStrategy("/unbound"))
}

// Unsetting a deep binding falls lookups back to the parent binding.
func TestStrategyChoiceUnset(t *testing.T) {
	tbl := NewStrategyChoiceTable()
	tbl.Set("/a", "strategy-one", "maxdelay=100")
	tbl.Set("/a/b", "strategy-two", "maxloss=0.05")

	tbl.Unset("/a/b")
	assert.Equal(t, "strategy-one", tbl.FindEffectiveStrategy("/a/b/c"))
	assert.Equal(t, "maxdelay=100", tbl.FindEffectiveParameters("/a/b/c"))
}

func TestSplitName(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitName("/a/b"))
	assert.Empty(t, splitName("/"))
	assert.Equal(t, []string{"a"}, splitName("a/"))
}
