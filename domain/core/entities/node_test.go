package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loom/domain/core/valueobjects"
)

func TestNewNode_Defaults(t *testing.T) {
	node := NewNode(1, NoteContent{Text: "hello"}, 10, 20)

	assert.Equal(t, valueobjects.NodeID(1), node.ID)
	assert.Equal(t, 10.0, node.X)
	assert.Equal(t, 20.0, node.Y)
	assert.Equal(t, 800.0, node.Width)
	assert.Equal(t, 600.0, node.Height)
	assert.Equal(t, 1.0, node.Scale)
	assert.Empty(t, node.Label)
}

func TestNode_Builders(t *testing.T) {
	node := NewNode(2, SurfaceContent{SurfaceID: 99}, 0, 0).
		WithSize(400, 300).
		WithLabel("editor")

	assert.Equal(t, 400.0, node.Width)
	assert.Equal(t, 300.0, node.Height)
	assert.Equal(t, "editor", node.Label)
}

func TestNode_Type(t *testing.T) {
	tests := []struct {
		name    string
		content NodeContent
		want    NodeType
	}{
		{"surface", SurfaceContent{SurfaceID: 1}, NodeTypeSurface},
		{"generated", GeneratedContent{Text: "x"}, NodeTypeGenerated},
		{"group", GroupContent{Children: []valueobjects.NodeID{1, 2}}, NodeTypeGroup},
		{"note", NoteContent{Text: "x"}, NodeTypeNote},
		{"media", MediaContent{Path: "/tmp/img.png"}, NodeTypeMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewNode(1, tt.content, 0, 0)
			assert.Equal(t, tt.want, node.Type())
		})
	}
}

func TestNode_Type_NilContent(t *testing.T) {
	node := &Node{ID: 1}
	assert.Equal(t, NodeType(""), node.Type())
}

func TestNode_Bounds(t *testing.T) {
	node := NewNode(1, NoteContent{}, 100, 200).WithSize(50, 25)

	minX, minY, maxX, maxY := node.Bounds()

	assert.Equal(t, 100.0, minX)
	assert.Equal(t, 200.0, minY)
	assert.Equal(t, 150.0, maxX)
	assert.Equal(t, 225.0, maxY)
}
