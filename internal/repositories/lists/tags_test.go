package lists

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", joinTags(nil))
	assert.Equal(t, "a,b", joinTags([]string{"a", "b"}))
	assert.Equal(t, "a,b", joinTags([]string{" a ", "b", ""}), "blanks trimmed and dropped")
	assert.Equal(t, "a,b", joinTags([]string{"a", "b", "a"}), "duplicates collapse, first occurrence wins")
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, splitTags(""))
	assert.Equal(t, []string{"a", "b"}, splitTags("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitTags(" a , b ,"))
	assert.Nil(t, splitTags(" , ,"))
}
