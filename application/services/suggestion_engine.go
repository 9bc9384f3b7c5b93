package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"loom/domain/config"
	"loom/domain/core/aggregates"
	"loom/domain/core/entities"
	"loom/domain/core/valueobjects"
)

// maxPairwiseNodes bounds the O(n^2) similarity pass; canvases larger
// than this get proximity grouping only
const maxPairwiseNodes = 500

// SuggestedActionType classifies a suggested action
type SuggestedActionType string

const (
	// ActionConnect suggests connecting two nodes
	ActionConnect SuggestedActionType = "connect"
	// ActionGroup suggests grouping a set of nodes
	ActionGroup SuggestedActionType = "group"
	// ActionReposition suggests moving a node to a better position
	ActionReposition SuggestedActionType = "reposition"
	// ActionOpenRelated suggests opening related content
	ActionOpenRelated SuggestedActionType = "open_related"
)

// SuggestedAction is the concrete action behind a suggestion. Only the
// fields relevant to the action type are set.
type SuggestedAction struct {
	Type SuggestedActionType `json:"type"`

	// From, To are the endpoints of a connect action
	From valueobjects.NodeID `json:"from,omitempty"`
	To   valueobjects.NodeID `json:"to,omitempty"`
	// Nodes are the members of a group action
	Nodes []valueobjects.NodeID `json:"nodes,omitempty"`
	// Node, X, Y describe a reposition action
	Node valueobjects.NodeID `json:"node,omitempty"`
	X    float64             `json:"x,omitempty"`
	Y    float64             `json:"y,omitempty"`
	// Query is the search text of an open-related action
	Query string `json:"query,omitempty"`
}

// Suggestion is a proposed canvas action with a confidence score in
// (0, 1]
type Suggestion struct {
	Description string          `json:"description"`
	Action      SuggestedAction `json:"action"`
	Confidence  float64         `json:"confidence"`
}

// SuggestionEngine analyzes the canvas and proposes connections and
// groupings based on label similarity and spatial proximity
type SuggestionEngine struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewSuggestionEngine creates an engine with the default tuning
func NewSuggestionEngine(logger *zap.Logger) *SuggestionEngine {
	return NewSuggestionEngineWithConfig(config.DefaultDomainConfig(), logger)
}

// NewSuggestionEngineWithConfig creates an engine with explicit tuning
func NewSuggestionEngineWithConfig(cfg *config.DomainConfig, logger *zap.Logger) *SuggestionEngine {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Initializing suggestion engine")
	return &SuggestionEngine{cfg: cfg, logger: logger}
}

// Analyze inspects the canvas and returns suggestions ordered by
// descending confidence. The result is deterministic for a given
// canvas state.
func (e *SuggestionEngine) Analyze(canvas *aggregates.Canvas) []Suggestion {
	if canvas == nil {
		return nil
	}

	nodes := canvas.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	e.logger.Debug("Analyzing canvas for suggestions", zap.Int("nodes", len(nodes)))

	var suggestions []Suggestion
	connected := connectedPairs(canvas)

	if len(nodes) <= maxPairwiseNodes {
		suggestions = append(suggestions, e.suggestConnections(nodes, connected)...)
	}
	suggestions = append(suggestions, e.suggestGroups(nodes, connected)...)

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) > e.cfg.MaxSuggestions {
		suggestions = suggestions[:e.cfg.MaxSuggestions]
	}
	return suggestions
}

// suggestConnections proposes edges between unconnected node pairs
// whose label keywords overlap
func (e *SuggestionEngine) suggestConnections(nodes []*entities.Node, connected map[[2]valueobjects.NodeID]bool) []Suggestion {
	keywords := make(map[valueobjects.NodeID]map[string]bool, len(nodes))
	for _, n := range nodes {
		keywords[n.ID] = extractKeywords(n.Label)
	}

	var out []Suggestion
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if connected[[2]valueobjects.NodeID{a.ID, b.ID}] {
				continue
			}

			similarity := jaccard(keywords[a.ID], keywords[b.ID])
			if similarity < e.cfg.SimilarityThreshold {
				continue
			}

			out = append(out, Suggestion{
				Description: fmt.Sprintf("Connect %q and %q: related content", a.Label, b.Label),
				Action: SuggestedAction{
					Type: ActionConnect,
					From: a.ID,
					To:   b.ID,
				},
				Confidence: similarity,
			})
		}
	}
	return out
}

// suggestGroups proposes grouping spatial clusters of three or more
// nodes that share no connections
func (e *SuggestionEngine) suggestGroups(nodes []*entities.Node, connected map[[2]valueobjects.NodeID]bool) []Suggestion {
	visited := make(map[valueobjects.NodeID]bool, len(nodes))
	byID := make(map[valueobjects.NodeID]*entities.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var out []Suggestion
	for _, seed := range nodes {
		if visited[seed.ID] {
			continue
		}

		cluster := e.proximityCluster(seed, nodes, visited)
		if len(cluster) < 3 {
			continue
		}

		if anyConnected(cluster, connected) {
			continue
		}

		confidence := math.Min(0.8, 0.4+0.05*float64(len(cluster)))
		out = append(out, Suggestion{
			Description: fmt.Sprintf("Group %d nearby nodes", len(cluster)),
			Action: SuggestedAction{
				Type:  ActionGroup,
				Nodes: cluster,
			},
			Confidence: confidence,
		})
	}
	return out
}

// proximityCluster expands from seed over nodes within the proximity
// radius of any cluster member, marking everything it visits
func (e *SuggestionEngine) proximityCluster(seed *entities.Node, nodes []*entities.Node, visited map[valueobjects.NodeID]bool) []valueobjects.NodeID {
	cluster := []valueobjects.NodeID{seed.ID}
	members := []*entities.Node{seed}
	visited[seed.ID] = true

	for cursor := 0; cursor < len(members); cursor++ {
		current := members[cursor]
		for _, candidate := range nodes {
			if visited[candidate.ID] {
				continue
			}
			if distance(current, candidate) > e.cfg.ProximityRadius {
				continue
			}
			visited[candidate.ID] = true
			cluster = append(cluster, candidate.ID)
			members = append(members, candidate)
		}
	}

	sort.Slice(cluster, func(i, j int) bool { return cluster[i] < cluster[j] })
	return cluster
}

// connectedPairs builds an order-independent lookup of existing edges
func connectedPairs(canvas *aggregates.Canvas) map[[2]valueobjects.NodeID]bool {
	pairs := make(map[[2]valueobjects.NodeID]bool)
	for _, conn := range canvas.Connections() {
		pairs[[2]valueobjects.NodeID{conn.From, conn.To}] = true
		pairs[[2]valueobjects.NodeID{conn.To, conn.From}] = true
	}
	return pairs
}

func anyConnected(cluster []valueobjects.NodeID, connected map[[2]valueobjects.NodeID]bool) bool {
	for i := 0; i < len(cluster); i++ {
		for j := i + 1; j < len(cluster); j++ {
			if connected[[2]valueobjects.NodeID{cluster[i], cluster[j]}] {
				return true
			}
		}
	}
	return false
}

func distance(a, b *entities.Node) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// jaccard computes set overlap as |intersection| / |union|
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for word := range a {
		if b[word] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// stopWords are skipped during keyword extraction
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
}

// extractKeywords pulls significant words out of a label for
// similarity matching
func extractKeywords(text string) map[string]bool {
	keywords := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) > 3 && !stopWords[word] {
			keywords[word] = true
		}
	}
	return keywords
}
