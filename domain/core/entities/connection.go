package entities

import (
	"loom/domain/core/valueobjects"
)

// ConnectionType defines the kind of relationship a connection carries
type ConnectionType string

const (
	// ConnectionTypeLink is a simple visual link
	ConnectionTypeLink ConnectionType = "link"
	// ConnectionTypeDataFlow marks data flowing from one node to another
	ConnectionTypeDataFlow ConnectionType = "data_flow"
	// ConnectionTypeSemantic is an inferred semantic relationship; the
	// Relationship field names it
	ConnectionTypeSemantic ConnectionType = "semantic"
)

// Connection is a directed edge between two node ids. Connections have
// no identity of their own: duplicate edges and reverse edges may
// coexist, and equality is positional.
type Connection struct {
	From         valueobjects.NodeID `json:"from"`
	To           valueobjects.NodeID `json:"to"`
	Type         ConnectionType      `json:"type"`
	Relationship string              `json:"relationship,omitempty"`
}

// NewConnection creates a link-typed connection between two node ids
func NewConnection(from, to valueobjects.NodeID) *Connection {
	return &Connection{
		From: from,
		To:   to,
		Type: ConnectionTypeLink,
	}
}

// WithType retags the connection's relationship kind
func (c *Connection) WithType(t ConnectionType) *Connection {
	c.Type = t
	return c
}

// WithRelationship sets the semantic relationship name
func (c *Connection) WithRelationship(relationship string) *Connection {
	c.Relationship = relationship
	return c
}

// Touches reports whether the connection references the given node id
// as either endpoint
func (c *Connection) Touches(id valueobjects.NodeID) bool {
	return c.From == id || c.To == id
}
