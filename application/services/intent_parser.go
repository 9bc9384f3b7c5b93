package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// IntentType classifies a parsed user intent
type IntentType string

const (
	// IntentLaunch opens an application
	IntentLaunch IntentType = "launch"
	// IntentSearch searches for content
	IntentSearch IntentType = "search"
	// IntentArrange rearranges nodes on the canvas
	IntentArrange IntentType = "arrange"
	// IntentFocus focuses a specific node or content
	IntentFocus IntentType = "focus"
	// IntentCreate creates a new node
	IntentCreate IntentType = "create"
	// IntentConnect connects two nodes
	IntentConnect IntentType = "connect"
	// IntentQuery is a general question for the assistant
	IntentQuery IntentType = "query"
)

// ArrangePattern names a node arrangement layout
type ArrangePattern string

const (
	ArrangeGrid     ArrangePattern = "grid"
	ArrangeStack    ArrangePattern = "stack"
	ArrangeRadial   ArrangePattern = "radial"
	ArrangeTimeline ArrangePattern = "timeline"
	ArrangeAuto     ArrangePattern = "auto"
)

// Intent is a structured action derived from free-form user input
type Intent struct {
	Type IntentType `json:"type"`

	// App is the application to launch (IntentLaunch)
	App string `json:"app,omitempty"`
	// Query is the search text (IntentSearch)
	Query string `json:"query,omitempty"`
	// Pattern is the requested layout (IntentArrange)
	Pattern ArrangePattern `json:"pattern,omitempty"`
	// Target names the node or content to focus (IntentFocus)
	Target string `json:"target,omitempty"`
	// NodeType and Content describe the node to create (IntentCreate)
	NodeType string `json:"node_type,omitempty"`
	Content  string `json:"content,omitempty"`
	// From, To name the nodes to connect (IntentConnect)
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	// Question is the raw question text (IntentQuery)
	Question string `json:"question,omitempty"`
}

// IntentParser converts user input (text, voice transcripts) into
// structured intents the compositor can act upon. The current
// implementation is keyword matching; a model-backed parser plugs in
// behind the same interface.
type IntentParser struct {
	logger *zap.Logger
}

// NewIntentParser creates a new intent parser
func NewIntentParser(logger *zap.Logger) *IntentParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Initializing intent parser")
	return &IntentParser{logger: logger}
}

// Parse converts natural language input into an intent. Input that
// matches no known pattern becomes a general query rather than an
// error.
func (p *IntentParser) Parse(ctx context.Context, input string) (Intent, error) {
	p.logger.Debug("Parsing intent", zap.String("input", input))

	lower := strings.ToLower(input)

	if strings.HasPrefix(lower, "open ") || strings.HasPrefix(lower, "launch ") {
		return Intent{
			Type: IntentLaunch,
			App:  restOfInput(input),
		}, nil
	}

	if strings.HasPrefix(lower, "search ") || strings.HasPrefix(lower, "find ") {
		return Intent{
			Type:  IntentSearch,
			Query: restOfInput(input),
		}, nil
	}

	if strings.Contains(lower, "arrange") || strings.Contains(lower, "organize") {
		return Intent{
			Type:    IntentArrange,
			Pattern: ArrangeAuto,
		}, nil
	}

	return Intent{
		Type:     IntentQuery,
		Question: input,
	}, nil
}

// restOfInput drops the leading command word and rejoins the remainder
func restOfInput(input string) string {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
