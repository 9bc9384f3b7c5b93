package services

import (
	"math"

	"go.uber.org/zap"

	"loom/domain/core/entities"
	"loom/domain/core/validators"
	"loom/domain/core/valueobjects"
	pkgerrors "loom/pkg/errors"
)

// generatorIDBase is where generated node ids start. Surface-backed
// nodes derive ids from surface handles well below this range.
const generatorIDBase valueobjects.NodeID = 1000

// maxGeneratedLabel is the label length generated nodes are given,
// in runes
const maxGeneratedLabel = 30

// ContentGenerator creates canvas nodes for generated content and
// notes, allocating ids from its own monotonic counter
type ContentGenerator struct {
	nextNodeID valueobjects.NodeID
	validator  *validators.NodeValidator
	logger     *zap.Logger
}

// NewContentGenerator creates a generator with a fresh id counter
func NewContentGenerator(logger *zap.Logger) *ContentGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentGenerator{
		nextNodeID: generatorIDBase,
		validator:  validators.NewNodeValidator(),
		logger:     logger,
	}
}

// allocateNodeID returns the next id, failing on counter overflow
func (g *ContentGenerator) allocateNodeID() (valueobjects.NodeID, error) {
	if g.nextNodeID == math.MaxUint64 {
		return 0, pkgerrors.NewResourceLimitError("node id space exhausted")
	}
	id := g.nextNodeID
	g.nextNodeID++
	return id, nil
}

// GenerateNode creates a generated-content node at the given anchor,
// sized 400x300, labeled with a truncated preview of the content
func (g *ContentGenerator) GenerateNode(content string, x, y float64) (*entities.Node, error) {
	if err := g.validator.ValidateContent(content); err != nil {
		return nil, err
	}

	id, err := g.allocateNodeID()
	if err != nil {
		return nil, err
	}

	g.logger.Debug("Generating node",
		zap.Uint64("id", uint64(id)),
		zap.Int("contentLength", len(content)),
	)

	node := entities.NewNode(id, entities.GeneratedContent{Text: content}, x, y).
		WithSize(400.0, 300.0).
		WithLabel(truncateLabel(content, maxGeneratedLabel))

	return node, nil
}

// GenerateNote creates a note node at the given anchor, sized 300x200
func (g *ContentGenerator) GenerateNote(text string, x, y float64) (*entities.Node, error) {
	if err := g.validator.ValidateContent(text); err != nil {
		return nil, err
	}

	id, err := g.allocateNodeID()
	if err != nil {
		return nil, err
	}

	node := entities.NewNode(id, entities.NoteContent{Text: text}, x, y).
		WithSize(300.0, 200.0)

	return node, nil
}

// truncateLabel shortens s to at most maxLen runes, appending "..."
// when anything was cut. Truncation counts runes, never splitting a
// multi-byte character.
func truncateLabel(s string, maxLen int) string {
	runes := []rune(s)

	if maxLen < 4 {
		if len(runes) <= maxLen {
			return s
		}
		return string(runes[:maxLen])
	}

	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen-3]) + "..."
}
