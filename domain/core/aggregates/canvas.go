package aggregates

import (
	"fmt"
	"math"

	"loom/domain/config"
	"loom/domain/core/entities"
	"loom/domain/core/valueobjects"
	pkgerrors "loom/pkg/errors"
)

// Canvas is the aggregate root of the spatial model. It owns every
// node, every connection, and exactly one viewport, and enforces all
// cross-entity invariants and resource limits at admission time.
//
// The canvas is designed for single-threaded ownership: one control
// thread performs all reads and writes between discrete external
// events. It carries no synchronization of its own; callers needing
// concurrency must serialize access around the whole aggregate.
type Canvas struct {
	nodes       map[valueobjects.NodeID]*entities.Node
	connections []*entities.Connection
	viewport    *entities.Viewport
	cfg         *config.DomainConfig
}

// NewCanvas creates an empty canvas with the default resource limits
// and a default viewport
func NewCanvas() *Canvas {
	return NewCanvasWithConfig(config.DefaultDomainConfig())
}

// NewCanvasWithConfig creates an empty canvas with explicit limits
func NewCanvasWithConfig(cfg *config.DomainConfig) *Canvas {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Canvas{
		nodes:       make(map[valueobjects.NodeID]*entities.Node),
		connections: []*entities.Connection{},
		viewport:    entities.DefaultViewport(),
		cfg:         cfg,
	}
}

// AddNode admits a node into the canvas, enforcing the node cap and
// the coordinate bounds. A node whose id is already present replaces
// the previous entry. Returns the admitted node's id.
func (c *Canvas) AddNode(node *entities.Node) (valueobjects.NodeID, error) {
	if node == nil {
		return 0, pkgerrors.NewValidationError("node cannot be nil")
	}

	if len(c.nodes) >= c.cfg.MaxNodes {
		return 0, pkgerrors.NewResourceLimitError(
			fmt.Sprintf("maximum nodes (%d) exceeded", c.cfg.MaxNodes))
	}

	if !isValidCoordinate(node.X) || !isValidCoordinate(node.Y) {
		return 0, pkgerrors.NewResourceLimitError("node coordinates out of bounds").
			WithDetail("x", node.X).
			WithDetail("y", node.Y)
	}

	c.nodes[node.ID] = node
	return node.ID, nil
}

// GetNode looks a node up by id. The returned pointer grants the
// caller unrestricted field mutation without re-validation; use
// SetNodePosition when the coordinate bounds must be re-checked.
func (c *Canvas) GetNode(id valueobjects.NodeID) (*entities.Node, bool) {
	node, ok := c.nodes[id]
	return node, ok
}

// HasNode reports whether a node with the given id is present
func (c *Canvas) HasNode(id valueobjects.NodeID) bool {
	_, ok := c.nodes[id]
	return ok
}

// SetNodePosition moves a node, re-validating the coordinate bounds
// the same way AddNode does at admission
func (c *Canvas) SetNodePosition(id valueobjects.NodeID, x, y float64) error {
	node, ok := c.nodes[id]
	if !ok {
		return pkgerrors.NewNodeNotFoundError(id)
	}

	if !isValidCoordinate(x) || !isValidCoordinate(y) {
		return pkgerrors.NewResourceLimitError("node coordinates out of bounds").
			WithDetail("x", x).
			WithDetail("y", y)
	}

	node.X = x
	node.Y = y
	return nil
}

// RemoveNode deletes a node and every connection touching it, and
// returns the removed node. The removal is atomic from the outside: no
// caller can observe the node gone with its connections remaining.
func (c *Canvas) RemoveNode(id valueobjects.NodeID) (*entities.Node, bool) {
	node, ok := c.nodes[id]
	if !ok {
		return nil, false
	}

	kept := c.connections[:0]
	for _, conn := range c.connections {
		if !conn.Touches(id) {
			kept = append(kept, conn)
		}
	}
	c.connections = kept

	delete(c.nodes, id)
	return node, true
}

// Connect appends a link-typed connection between two existing nodes,
// enforcing the connection cap and endpoint existence
func (c *Canvas) Connect(from, to valueobjects.NodeID) error {
	return c.ConnectTyped(from, to, entities.ConnectionTypeLink)
}

// ConnectTyped appends a connection of the given type between two
// existing nodes, with the same validation as Connect
func (c *Canvas) ConnectTyped(from, to valueobjects.NodeID, connType entities.ConnectionType) error {
	if len(c.connections) >= c.cfg.MaxConnections {
		return pkgerrors.NewResourceLimitError(
			fmt.Sprintf("maximum connections (%d) exceeded", c.cfg.MaxConnections))
	}

	if _, ok := c.nodes[from]; !ok {
		return pkgerrors.NewNodeNotFoundError(from)
	}
	if _, ok := c.nodes[to]; !ok {
		return pkgerrors.NewNodeNotFoundError(to)
	}

	c.connections = append(c.connections, entities.NewConnection(from, to).WithType(connType))
	return nil
}

// VisibleNodes returns the nodes whose anchor point falls inside the
// viewport. The slice is derived fresh on every call; no iteration
// state persists between calls.
//
// Visibility is tested against the anchor point only, not the node's
// full rectangle: a large node anchored off-screen whose body overlaps
// the viewport is reported invisible. Renderers that need extent-based
// culling can combine Node.Bounds with Viewport.IntersectsRect.
func (c *Canvas) VisibleNodes() []*entities.Node {
	visible := make([]*entities.Node, 0)
	for _, node := range c.nodes {
		if c.viewport.Contains(node.X, node.Y) {
			visible = append(visible, node)
		}
	}
	return visible
}

// Connections returns a copy of the connection list in insertion order
func (c *Canvas) Connections() []*entities.Connection {
	conns := make([]*entities.Connection, len(c.connections))
	copy(conns, c.connections)
	return conns
}

// Nodes returns all nodes in the canvas, in no particular order
func (c *Canvas) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, 0, len(c.nodes))
	for _, node := range c.nodes {
		nodes = append(nodes, node)
	}
	return nodes
}

// NodeCount returns the number of nodes in the canvas
func (c *Canvas) NodeCount() int {
	return len(c.nodes)
}

// ConnectionCount returns the number of connections in the canvas
func (c *Canvas) ConnectionCount() int {
	return len(c.connections)
}

// Viewport returns the canvas's viewport for reading and mutation
func (c *Canvas) Viewport() *entities.Viewport {
	return c.viewport
}

// Config returns the resource limits this canvas enforces
func (c *Canvas) Config() *config.DomainConfig {
	return c.cfg
}

// isValidCoordinate checks that a coordinate is finite and within the
// canvas bounds
func isValidCoordinate(coord float64) bool {
	return !math.IsNaN(coord) && !math.IsInf(coord, 0) &&
		coord >= config.MinCoordinate && coord <= config.MaxCoordinate
}
