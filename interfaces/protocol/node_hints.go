// Package protocol carries the metadata clients exchange with the
// compositor when they opt in to node placement instead of
// traditional window management.
package protocol

import (
	"go.uber.org/zap"

	"loom/domain/config"
	"loom/domain/core/validators"
)

// NodeHints is client-supplied metadata for a surface that wants to be
// treated as a canvas node
type NodeHints struct {
	// Label is the client's suggested label for the node
	Label string
	// ContentType hints at the content for classification
	ContentType string
	// Groupable marks the node as preferring grouping with similar content
	Groupable bool
	// SuggestedConnections names other nodes this one relates to
	SuggestedConnections []string
}

// NewNodeHints returns empty hints
func NewNodeHints() *NodeHints {
	return &NodeHints{}
}

// WithLabel sets the suggested label
func (h *NodeHints) WithLabel(label string) *NodeHints {
	h.Label = label
	return h
}

// WithContentType sets the content type hint
func (h *NodeHints) WithContentType(contentType string) *NodeHints {
	h.ContentType = contentType
	return h
}

// WithGroupable marks the node groupable
func (h *NodeHints) WithGroupable() *NodeHints {
	h.Groupable = true
	return h
}

// WithSuggestedConnection appends a suggested connection target
func (h *NodeHints) WithSuggestedConnection(target string) *NodeHints {
	h.SuggestedConnections = append(h.SuggestedConnections, target)
	return h
}

// Sanitize validates client-supplied hints and rejects anything
// exceeding the configured limits. Hints cross a trust boundary and
// are never applied unchecked.
func (h *NodeHints) Sanitize(v *validators.NodeValidator, cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if h.Label != "" {
		if err := v.ValidateLabel(h.Label); err != nil {
			return err
		}
	}
	if h.ContentType != "" {
		if err := v.ValidateContentType(h.ContentType); err != nil {
			return err
		}
	}
	if len(h.SuggestedConnections) > cfg.MaxSuggestedConnections {
		h.SuggestedConnections = h.SuggestedConnections[:cfg.MaxSuggestedConnections]
	}
	for _, target := range h.SuggestedConnections {
		if err := v.ValidateLabel(target); err != nil {
			return err
		}
	}
	return nil
}

// Handler tracks per-surface node hints on the server side
type Handler struct {
	validator *validators.NodeValidator
	cfg       *config.DomainConfig
	hints     map[string]*NodeHints
	logger    *zap.Logger
}

// NewHandler creates a protocol handler
func NewHandler(cfg *config.DomainConfig, logger *zap.Logger) *Handler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Initializing node protocol handler")
	return &Handler{
		validator: validators.NewNodeValidatorWithConfig(cfg),
		cfg:       cfg,
		hints:     make(map[string]*NodeHints),
		logger:    logger,
	}
}

// SetHints stores sanitized hints for a surface, replacing any
// previous hints
func (p *Handler) SetHints(surfaceID string, hints *NodeHints) error {
	if hints == nil {
		hints = NewNodeHints()
	}
	if err := hints.Sanitize(p.validator, p.cfg); err != nil {
		p.logger.Warn("Rejected node hints",
			zap.String("surface_id", surfaceID),
			zap.Error(err),
		)
		return err
	}
	p.hints[surfaceID] = hints
	p.logger.Debug("Stored node hints",
		zap.String("surface_id", surfaceID),
		zap.String("label", hints.Label),
	)
	return nil
}

// Hints returns the stored hints for a surface
func (p *Handler) Hints(surfaceID string) (*NodeHints, bool) {
	h, ok := p.hints[surfaceID]
	return h, ok
}

// RemoveHints drops hints for a surface that went away
func (p *Handler) RemoveHints(surfaceID string) {
	delete(p.hints, surfaceID)
}
