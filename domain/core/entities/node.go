package entities

import (
	"loom/domain/core/valueobjects"
)

// NodeType identifies the content variant carried by a node
type NodeType string

const (
	// NodeTypeSurface is an application window mapped onto the canvas
	NodeTypeSurface NodeType = "surface"
	// NodeTypeGenerated is AI-generated content
	NodeTypeGenerated NodeType = "generated"
	// NodeTypeGroup is a grouping of other nodes
	NodeTypeGroup NodeType = "group"
	// NodeTypeNote is a text note
	NodeTypeNote NodeType = "note"
	// NodeTypeMedia is an image or media reference
	NodeTypeMedia NodeType = "media"
)

// NodeContent is the polymorphic payload of a node. The variant set is
// closed: only the content types in this package implement it.
type NodeContent interface {
	NodeType() NodeType
}

// SurfaceContent references an externally managed surface (a window)
type SurfaceContent struct {
	SurfaceID uint64 `json:"surface_id"`
}

// NodeType returns NodeTypeSurface
func (SurfaceContent) NodeType() NodeType { return NodeTypeSurface }

// GeneratedContent holds AI-generated content
type GeneratedContent struct {
	Text string `json:"text"`
}

// NodeType returns NodeTypeGenerated
func (GeneratedContent) NodeType() NodeType { return NodeTypeGenerated }

// GroupContent holds the member ids of a node group
type GroupContent struct {
	Children []valueobjects.NodeID `json:"children"`
}

// NodeType returns NodeTypeGroup
func (GroupContent) NodeType() NodeType { return NodeTypeGroup }

// NoteContent holds a text note
type NoteContent struct {
	Text string `json:"text"`
}

// NodeType returns NodeTypeNote
func (NoteContent) NodeType() NodeType { return NodeTypeNote }

// MediaContent references an image or media file by path
type MediaContent struct {
	Path string `json:"path"`
}

// NodeType returns NodeTypeMedia
func (MediaContent) NodeType() NodeType { return NodeTypeMedia }

// Default node dimensions on construction
const (
	DefaultNodeWidth  = 800.0
	DefaultNodeHeight = 600.0
)

// Node is a content item placed on the canvas. It is a plain value
// type: fields are exported and mutated directly by whoever holds the
// node, and the canvas re-validates coordinates only at admission time.
type Node struct {
	ID      valueobjects.NodeID `json:"id"`
	Content NodeContent         `json:"content"`
	X       float64             `json:"x"`
	Y       float64             `json:"y"`
	Width   float64             `json:"width"`
	Height  float64             `json:"height"`
	Scale   float64             `json:"scale"`
	Label   string              `json:"label,omitempty"`
}

// NewNode creates a node at the given anchor point with the default
// 800x600 size at scale 1.0
func NewNode(id valueobjects.NodeID, content NodeContent, x, y float64) *Node {
	return &Node{
		ID:      id,
		Content: content,
		X:       x,
		Y:       y,
		Width:   DefaultNodeWidth,
		Height:  DefaultNodeHeight,
		Scale:   1.0,
	}
}

// WithSize overrides the node's dimensions at construction time
func (n *Node) WithSize(width, height float64) *Node {
	n.Width = width
	n.Height = height
	return n
}

// WithLabel sets the node's label at construction time
func (n *Node) WithLabel(label string) *Node {
	n.Label = label
	return n
}

// Type returns the node's content variant tag
func (n *Node) Type() NodeType {
	if n.Content == nil {
		return ""
	}
	return n.Content.NodeType()
}

// Bounds returns the node's axis-aligned rectangle as
// (minX, minY, maxX, maxY). Used by collaborators for hit-testing and
// layout; the canvas itself does not enforce anything about it.
func (n *Node) Bounds() (float64, float64, float64, float64) {
	return n.X, n.Y, n.X + n.Width, n.Y + n.Height
}
