package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/domain/config"
	"loom/domain/core/entities"
	"loom/domain/core/valueobjects"
	pkgerrors "loom/pkg/errors"
)

func TestContentGenerator_GenerateNode(t *testing.T) {
	gen := NewContentGenerator(nil)

	node, err := gen.GenerateNode("Summary of the meeting", 100, 200)

	require.NoError(t, err)
	assert.Equal(t, valueobjects.NodeID(1000), node.ID)
	assert.Equal(t, entities.NodeTypeGenerated, node.Type())
	assert.Equal(t, 400.0, node.Width)
	assert.Equal(t, 300.0, node.Height)
	assert.Equal(t, 100.0, node.X)
	assert.Equal(t, 200.0, node.Y)
	assert.Equal(t, "Summary of the meeting", node.Label)

	content, ok := node.Content.(entities.GeneratedContent)
	require.True(t, ok)
	assert.Equal(t, "Summary of the meeting", content.Text)
}

func TestContentGenerator_GenerateNode_LongLabelTruncated(t *testing.T) {
	gen := NewContentGenerator(nil)
	content := strings.Repeat("x", 100)

	node, err := gen.GenerateNode(content, 0, 0)

	require.NoError(t, err)
	assert.Len(t, []rune(node.Label), 30)
	assert.True(t, strings.HasSuffix(node.Label, "..."))
}

func TestContentGenerator_GenerateNote(t *testing.T) {
	gen := NewContentGenerator(nil)

	node, err := gen.GenerateNote("todo: buy milk", 5, 5)

	require.NoError(t, err)
	assert.Equal(t, entities.NodeTypeNote, node.Type())
	assert.Equal(t, 300.0, node.Width)
	assert.Equal(t, 200.0, node.Height)

	content, ok := node.Content.(entities.NoteContent)
	require.True(t, ok)
	assert.Equal(t, "todo: buy milk", content.Text)
}

func TestContentGenerator_RejectsOversizedContent(t *testing.T) {
	gen := NewContentGenerator(nil)
	oversized := strings.Repeat("x", config.DefaultDomainConfig().MaxContentLength+1)

	_, err := gen.GenerateNode(oversized, 0, 0)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = gen.GenerateNote(oversized, 0, 0)
	assert.True(t, pkgerrors.IsValidation(err))

	// a rejected request does not consume an id
	node, err := gen.GenerateNode("ok", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, valueobjects.NodeID(1000), node.ID)
}

func TestContentGenerator_IDsAreSequential(t *testing.T) {
	gen := NewContentGenerator(nil)

	first, err := gen.GenerateNode("a", 0, 0)
	require.NoError(t, err)
	second, err := gen.GenerateNote("b", 0, 0)
	require.NoError(t, err)
	third, err := gen.GenerateNode("c", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.NodeID(1000), first.ID)
	assert.Equal(t, valueobjects.NodeID(1001), second.ID)
	assert.Equal(t, valueobjects.NodeID(1002), third.ID)
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"tiny limit hard cut", "hello", 3, "hel"},
		{"multibyte runes preserved", "héllo wörld", 8, "héllo..."},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateLabel(tt.input, tt.maxLen))
		})
	}
}
