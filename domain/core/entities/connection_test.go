package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConnection_DefaultsToLink(t *testing.T) {
	conn := NewConnection(1, 2)

	assert.Equal(t, ConnectionTypeLink, conn.Type)
	assert.Empty(t, conn.Relationship)
}

func TestConnection_Builders(t *testing.T) {
	conn := NewConnection(1, 2).
		WithType(ConnectionTypeSemantic).
		WithRelationship("references")

	assert.Equal(t, ConnectionTypeSemantic, conn.Type)
	assert.Equal(t, "references", conn.Relationship)
}

func TestConnection_Touches(t *testing.T) {
	conn := NewConnection(1, 2)

	assert.True(t, conn.Touches(1))
	assert.True(t, conn.Touches(2))
	assert.False(t, conn.Touches(3))

	selfLoop := NewConnection(5, 5)
	assert.True(t, selfLoop.Touches(5))
}
