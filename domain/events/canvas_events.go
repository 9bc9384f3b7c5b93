// Package events defines the domain events raised by canvas
// operations. Subsystems such as renderers and session persistence
// subscribe to these instead of polling the canvas.
package events

import (
	"time"

	"loom/domain/core/entities"
	"loom/domain/core/valueobjects"
)

// DomainEvent is the base interface for all canvas events.
// Events represent something that has already happened.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// Node Events

// NodeAdded is raised when a node is placed on the canvas
type NodeAdded struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
	Kind   entities.NodeType   `json:"kind"`
	X      float64             `json:"x"`
	Y      float64             `json:"y"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(node *entities.Node, timestamp time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: BaseEvent{
			AggregateID: node.ID.String(),
			EventType:   "node.added",
			Timestamp:   timestamp,
		},
		NodeID: node.ID,
		Kind:   node.Type(),
		X:      node.X,
		Y:      node.Y,
	}
}

// NodeMoved is raised when a node is moved to a new position
type NodeMoved struct {
	BaseEvent
	NodeID valueobjects.NodeID `json:"node_id"`
	OldX   float64             `json:"old_x"`
	OldY   float64             `json:"old_y"`
	NewX   float64             `json:"new_x"`
	NewY   float64             `json:"new_y"`
}

// NewNodeMoved creates a NodeMoved event
func NewNodeMoved(nodeID valueobjects.NodeID, oldX, oldY, newX, newY float64, timestamp time.Time) NodeMoved {
	return NodeMoved{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.moved",
			Timestamp:   timestamp,
		},
		NodeID: nodeID,
		OldX:   oldX,
		OldY:   oldY,
		NewX:   newX,
		NewY:   newY,
	}
}

// NodeRemoved is raised when a node is removed from the canvas,
// after its connections have been severed
type NodeRemoved struct {
	BaseEvent
	NodeID             valueobjects.NodeID `json:"node_id"`
	SeveredConnections int                 `json:"severed_connections"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(nodeID valueobjects.NodeID, severed int, timestamp time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "node.removed",
			Timestamp:   timestamp,
		},
		NodeID:             nodeID,
		SeveredConnections: severed,
	}
}

// Connection Events

// NodesConnected is raised when two nodes are connected
type NodesConnected struct {
	BaseEvent
	FromID valueobjects.NodeID     `json:"from_id"`
	ToID   valueobjects.NodeID     `json:"to_id"`
	Kind   entities.ConnectionType `json:"kind"`
}

// NewNodesConnected creates a NodesConnected event
func NewNodesConnected(fromID, toID valueobjects.NodeID, kind entities.ConnectionType, timestamp time.Time) NodesConnected {
	return NodesConnected{
		BaseEvent: BaseEvent{
			AggregateID: fromID.String(),
			EventType:   "nodes.connected",
			Timestamp:   timestamp,
		},
		FromID: fromID,
		ToID:   toID,
		Kind:   kind,
	}
}

// Viewport Events

// ViewportChanged is raised after a pan, zoom, or reset
type ViewportChanged struct {
	BaseEvent
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// NewViewportChanged creates a ViewportChanged event
func NewViewportChanged(v *entities.Viewport, timestamp time.Time) ViewportChanged {
	return ViewportChanged{
		BaseEvent: BaseEvent{
			AggregateID: "viewport",
			EventType:   "viewport.changed",
			Timestamp:   timestamp,
		},
		X:    v.X,
		Y:    v.Y,
		Zoom: v.Zoom,
	}
}
