package aggregates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/domain/config"
	"loom/domain/core/entities"
	"loom/domain/core/valueobjects"
	pkgerrors "loom/pkg/errors"
)

func surfaceNode(id valueobjects.NodeID, x, y float64) *entities.Node {
	return entities.NewNode(id, entities.SurfaceContent{SurfaceID: uint64(id)}, x, y)
}

func TestCanvas_AddNode_Success(t *testing.T) {
	canvas := NewCanvas()

	id, err := canvas.AddNode(surfaceNode(1, 100, 200))

	require.NoError(t, err)
	assert.Equal(t, valueobjects.NodeID(1), id)
	assert.Equal(t, 1, canvas.NodeCount())

	node, ok := canvas.GetNode(1)
	require.True(t, ok)
	assert.Equal(t, 100.0, node.X)
	assert.Equal(t, 200.0, node.Y)
	assert.Equal(t, entities.DefaultNodeWidth, node.Width)
	assert.Equal(t, entities.DefaultNodeHeight, node.Height)
}

func TestCanvas_AddNode_NilNode(t *testing.T) {
	canvas := NewCanvas()

	_, err := canvas.AddNode(nil)

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestCanvas_AddNode_NodeLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	canvas := NewCanvasWithConfig(cfg)

	for i := 0; i < cfg.MaxNodes; i++ {
		_, err := canvas.AddNode(surfaceNode(valueobjects.NodeID(i), 0, 0))
		require.NoError(t, err)
	}
	assert.Equal(t, cfg.MaxNodes, canvas.NodeCount())

	_, err := canvas.AddNode(surfaceNode(valueobjects.NodeID(cfg.MaxNodes), 0, 0))

	require.Error(t, err)
	assert.True(t, pkgerrors.IsResourceLimit(err))
	assert.Equal(t, cfg.MaxNodes, canvas.NodeCount())
}

func TestCanvas_AddNode_CoordinateBounds(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		y       float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"max boundary", 1_000_000, 1_000_000, false},
		{"min boundary", -1_000_000, -1_000_000, false},
		{"x beyond max", 1_000_001, 0, true},
		{"y beyond max", 0, 1_000_001, true},
		{"x beyond min", -1_000_001, 0, true},
		{"nan x", math.NaN(), 0, true},
		{"inf y", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := NewCanvas()
			_, err := canvas.AddNode(surfaceNode(1, tt.x, tt.y))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsResourceLimit(err))
				assert.Equal(t, 0, canvas.NodeCount())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanvas_AddNode_DuplicateIDOverwrites(t *testing.T) {
	canvas := NewCanvas()

	_, err := canvas.AddNode(surfaceNode(7, 10, 10))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(7, 500, 500))
	require.NoError(t, err)

	assert.Equal(t, 1, canvas.NodeCount())
	node, ok := canvas.GetNode(7)
	require.True(t, ok)
	assert.Equal(t, 500.0, node.X)
}

func TestCanvas_GetNode_MutableAccess(t *testing.T) {
	canvas := NewCanvas()
	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)

	node, ok := canvas.GetNode(1)
	require.True(t, ok)
	node.Label = "renamed"
	node.X = 42

	again, _ := canvas.GetNode(1)
	assert.Equal(t, "renamed", again.Label)
	assert.Equal(t, 42.0, again.X)
}

func TestCanvas_SetNodePosition(t *testing.T) {
	canvas := NewCanvas()
	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)

	require.NoError(t, canvas.SetNodePosition(1, 300, 400))
	node, _ := canvas.GetNode(1)
	assert.Equal(t, 300.0, node.X)
	assert.Equal(t, 400.0, node.Y)

	err = canvas.SetNodePosition(1, 1_000_001, 0)
	assert.True(t, pkgerrors.IsResourceLimit(err))
	assert.Equal(t, 300.0, node.X)

	err = canvas.SetNodePosition(99, 0, 0)
	assert.True(t, pkgerrors.IsNodeNotFound(err))
}

func TestCanvas_Connect_MissingEndpoint(t *testing.T) {
	canvas := NewCanvas()
	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)

	err = canvas.Connect(1, 2)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNodeNotFound(err))
	id, ok := pkgerrors.NodeIDFromError(err)
	require.True(t, ok)
	assert.Equal(t, valueobjects.NodeID(2), id)

	err = canvas.Connect(3, 1)
	require.Error(t, err)
	id, ok = pkgerrors.NodeIDFromError(err)
	require.True(t, ok)
	assert.Equal(t, valueobjects.NodeID(3), id)

	assert.Equal(t, 0, canvas.ConnectionCount())
}

func TestCanvas_Connect_ConnectionLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxConnections = 3
	canvas := NewCanvasWithConfig(cfg)

	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(2, 0, 0))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, canvas.Connect(1, 2))
	}

	err = canvas.Connect(1, 2)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsResourceLimit(err))
	assert.Equal(t, 3, canvas.ConnectionCount())
}

func TestCanvas_Connect_DuplicatesAndSelfLoopsAllowed(t *testing.T) {
	canvas := NewCanvas()
	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(2, 0, 0))
	require.NoError(t, err)

	require.NoError(t, canvas.Connect(1, 2))
	require.NoError(t, canvas.Connect(1, 2))
	require.NoError(t, canvas.Connect(2, 1))
	require.NoError(t, canvas.Connect(1, 1))

	assert.Equal(t, 4, canvas.ConnectionCount())
}

func TestCanvas_ConnectTyped(t *testing.T) {
	canvas := NewCanvas()
	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(2, 0, 0))
	require.NoError(t, err)

	require.NoError(t, canvas.ConnectTyped(1, 2, entities.ConnectionTypeDataFlow))

	conns := canvas.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, entities.ConnectionTypeDataFlow, conns[0].Type)
	assert.Equal(t, valueobjects.NodeID(1), conns[0].From)
	assert.Equal(t, valueobjects.NodeID(2), conns[0].To)
}

func TestCanvas_RemoveNode_CascadesConnections(t *testing.T) {
	canvas := NewCanvas()
	for i := 1; i <= 4; i++ {
		_, err := canvas.AddNode(surfaceNode(valueobjects.NodeID(i), 0, 0))
		require.NoError(t, err)
	}

	require.NoError(t, canvas.Connect(1, 2))
	require.NoError(t, canvas.Connect(2, 3))
	require.NoError(t, canvas.Connect(3, 2))
	require.NoError(t, canvas.Connect(3, 4))

	removed, ok := canvas.RemoveNode(2)
	require.True(t, ok)
	assert.Equal(t, valueobjects.NodeID(2), removed.ID)

	assert.Equal(t, 3, canvas.NodeCount())
	assert.Equal(t, 1, canvas.ConnectionCount())
	for _, conn := range canvas.Connections() {
		assert.False(t, conn.Touches(2))
	}
}

func TestCanvas_RemoveNode_Missing(t *testing.T) {
	canvas := NewCanvas()

	node, ok := canvas.RemoveNode(42)

	assert.False(t, ok)
	assert.Nil(t, node)
}

func TestCanvas_AddConnectRemoveScenario(t *testing.T) {
	canvas := NewCanvas()

	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(2, 100, 100))
	require.NoError(t, err)
	require.NoError(t, canvas.Connect(1, 2))

	_, ok := canvas.RemoveNode(1)
	require.True(t, ok)

	assert.Equal(t, 1, canvas.NodeCount())
	assert.Equal(t, 0, canvas.ConnectionCount())
	assert.True(t, canvas.HasNode(2))
	assert.False(t, canvas.HasNode(1))
}

func TestCanvas_VisibleNodes_AnchorOnly(t *testing.T) {
	canvas := NewCanvas()

	// default viewport: origin, zoom 1.0, 1920x1080 screen,
	// so visible canvas spans x in [-960, 960], y in [-540, 540]
	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(2, 959, 539))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(3, 5000, 5000))
	require.NoError(t, err)
	// anchor off-screen even though the 800x600 body would overlap
	_, err = canvas.AddNode(surfaceNode(4, -1000, 0))
	require.NoError(t, err)

	visible := canvas.VisibleNodes()

	ids := make(map[valueobjects.NodeID]bool)
	for _, n := range visible {
		ids[n.ID] = true
	}
	assert.Len(t, visible, 2)
	assert.True(t, ids[1])
	assert.True(t, ids[2])
	assert.False(t, ids[3])
	assert.False(t, ids[4])
}

func TestCanvas_VisibleNodes_TracksViewport(t *testing.T) {
	canvas := NewCanvas()
	_, err := canvas.AddNode(surfaceNode(1, 5000, 5000))
	require.NoError(t, err)

	assert.Empty(t, canvas.VisibleNodes())

	canvas.Viewport().X = 5000
	canvas.Viewport().Y = 5000

	assert.Len(t, canvas.VisibleNodes(), 1)
}

func TestCanvas_Connections_ReturnsCopy(t *testing.T) {
	canvas := NewCanvas()
	_, err := canvas.AddNode(surfaceNode(1, 0, 0))
	require.NoError(t, err)
	_, err = canvas.AddNode(surfaceNode(2, 0, 0))
	require.NoError(t, err)
	require.NoError(t, canvas.Connect(1, 2))

	conns := canvas.Connections()
	conns[0] = nil

	assert.NotNil(t, canvas.Connections()[0])
}
