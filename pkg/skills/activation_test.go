package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivationSet(t *testing.T) {
	set := NewActivationSet()
	assert.Zero(t, set.Len())
	assert.False(t, set.IsActive("pdf"))

	assert.True(t, set.Add("pdf"))
	assert.True(t, set.Add("docx"))
	assert.True(t, set.IsActive("pdf"))
	assert.True(t, set.IsActive("docx"))
	assert.Equal(t, 2, set.Len())

	// Activation order is preserved for prompt assembly.
	assert.Equal(t, []string{"pdf", "docx"}, set.Names())
}

func TestActivationSetIdempotent(t *testing.T) {
	set := NewActivationSet()
	assert.True(t, set.Add("pdf"))
	assert.False(t, set.Add("pdf"))
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"pdf"}, set.Names())
}

func TestActivationSetNamesIsCopy(t *testing.T) {
	set := NewActivationSet()
	set.Add("a")
	set.Add("b")

	names := set.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, set.Names())
}
