package services

import (
	"time"

	"go.uber.org/zap"

	"loom/domain/core/aggregates"
	"loom/domain/core/entities"
	"loom/domain/core/valueobjects"
	"loom/domain/events"
	"loom/pkg/observability"
)

// CanvasService is the compositor-facing facade over the canvas
// aggregate. It adds structured logging and metrics around the domain
// operations; all invariants stay in the aggregate itself.
//
// Like the canvas, the service is single-owner: the compositor's
// control thread is the only caller.
type CanvasService struct {
	canvas      *aggregates.Canvas
	logger      *zap.Logger
	metrics     *observability.Metrics
	subscribers []func(events.DomainEvent)
}

// NewCanvasService wraps a canvas with logging and metrics. Both
// logger and metrics may be nil.
func NewCanvasService(canvas *aggregates.Canvas, logger *zap.Logger, metrics *observability.Metrics) *CanvasService {
	if canvas == nil {
		canvas = aggregates.NewCanvas()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CanvasService{
		canvas:  canvas,
		logger:  logger,
		metrics: metrics,
	}
}

// Canvas returns the underlying aggregate for direct queries
func (s *CanvasService) Canvas() *aggregates.Canvas {
	return s.canvas
}

// Subscribe registers a listener for canvas domain events. Listeners
// run synchronously on the calling thread and must not mutate the
// canvas.
func (s *CanvasService) Subscribe(fn func(events.DomainEvent)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *CanvasService) publish(evt events.DomainEvent) {
	for _, fn := range s.subscribers {
		fn(evt)
	}
}

// AddNode admits a node into the canvas
func (s *CanvasService) AddNode(node *entities.Node) (valueobjects.NodeID, error) {
	id, err := s.canvas.AddNode(node)
	s.metrics.RecordOperation("add_node", err)

	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if node != nil {
			fields = append(fields, zap.Uint64("nodeID", uint64(node.ID)))
		}
		s.logger.Warn("Node rejected", fields...)
		return 0, err
	}

	s.logger.Debug("Node added",
		zap.Uint64("nodeID", uint64(id)),
		zap.String("type", string(node.Type())),
		zap.Float64("x", node.X),
		zap.Float64("y", node.Y),
	)
	s.publishSize()
	s.publish(events.NewNodeAdded(node, time.Now()))
	return id, nil
}

// RemoveNode removes a node and its connections
func (s *CanvasService) RemoveNode(id valueobjects.NodeID) (*entities.Node, bool) {
	before := s.canvas.ConnectionCount()
	node, ok := s.canvas.RemoveNode(id)
	if ok {
		severed := before - s.canvas.ConnectionCount()
		s.metrics.RecordOperation("remove_node", nil)
		s.logger.Debug("Node removed",
			zap.Uint64("nodeID", uint64(id)),
			zap.Int("severedConnections", severed),
		)
		s.publishSize()
		s.publish(events.NewNodeRemoved(id, severed, time.Now()))
	}
	return node, ok
}

// Connect creates a link-typed connection between two nodes
func (s *CanvasService) Connect(from, to valueobjects.NodeID) error {
	return s.ConnectTyped(from, to, entities.ConnectionTypeLink)
}

// ConnectTyped creates a connection of the given type between two nodes
func (s *CanvasService) ConnectTyped(from, to valueobjects.NodeID, connType entities.ConnectionType) error {
	err := s.canvas.ConnectTyped(from, to, connType)
	s.metrics.RecordOperation("connect", err)

	if err != nil {
		s.logger.Warn("Connection rejected",
			zap.Uint64("from", uint64(from)),
			zap.Uint64("to", uint64(to)),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("Nodes connected",
		zap.Uint64("from", uint64(from)),
		zap.Uint64("to", uint64(to)),
		zap.String("type", string(connType)),
	)
	s.publishSize()
	s.publish(events.NewNodesConnected(from, to, connType, time.Now()))
	return nil
}

// MoveNode repositions a node with coordinate re-validation
func (s *CanvasService) MoveNode(id valueobjects.NodeID, x, y float64) error {
	var oldX, oldY float64
	if node, ok := s.canvas.GetNode(id); ok {
		oldX, oldY = node.X, node.Y
	}

	err := s.canvas.SetNodePosition(id, x, y)
	s.metrics.RecordOperation("move_node", err)
	if err != nil {
		return err
	}

	s.publish(events.NewNodeMoved(id, oldX, oldY, x, y, time.Now()))
	return nil
}

// Pan moves the viewport by a screen-pixel delta
func (s *CanvasService) Pan(dx, dy float64) {
	vp := s.canvas.Viewport()
	vp.Pan(dx, dy)
	s.publish(events.NewViewportChanged(vp, time.Now()))
}

// ZoomAt zooms the viewport around a canvas point
func (s *CanvasService) ZoomAt(factor, centerX, centerY float64) {
	vp := s.canvas.Viewport()
	vp.ZoomAt(factor, centerX, centerY)
	s.publish(events.NewViewportChanged(vp, time.Now()))
}

// ResetView returns the viewport to the origin at zoom 1.0
func (s *CanvasService) ResetView() {
	vp := s.canvas.Viewport()
	vp.Reset()
	s.logger.Debug("Viewport reset")
	s.publish(events.NewViewportChanged(vp, time.Now()))
}

// VisibleNodes returns the nodes currently inside the viewport
func (s *CanvasService) VisibleNodes() []*entities.Node {
	return s.canvas.VisibleNodes()
}

func (s *CanvasService) publishSize() {
	s.metrics.SetCanvasSize(s.canvas.NodeCount(), s.canvas.ConnectionCount())
}
