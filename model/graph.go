package model

// DefaultNodeCategory is used for node types a consumer does not know
const DefaultNodeCategory = "default"

// Node is an entity as seen by the visualization layer
type Node struct {
	ID       string     `json:"id" yaml:"id"`
	Label    string     `json:"label" yaml:"label"`
	Type     EntityType `json:"type" yaml:"type"`
	Mentions int        `json:"mentions" yaml:"mentions"`
}

// Link is a relationship as seen by the visualization layer
type Link struct {
	Source     string       `json:"source" yaml:"source"`
	Target     string       `json:"target" yaml:"target"`
	Type       RelationType `json:"type" yaml:"type"`
	Confidence float64      `json:"confidence" yaml:"confidence"`
}

// GraphData is the node/link projection of the extracted graph
type GraphData struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Links []Link `json:"links" yaml:"links"`
}

// ExtractionResult contains the complete entity table and relationship list
// after an ingestion, not only what changed.
type ExtractionResult struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Category returns the node type for display, degrading unknown types to
// DefaultNodeCategory instead of rejecting them.
func (n Node) Category() string {
	if !n.Type.Valid() {
		return DefaultNodeCategory
	}
	return string(n.Type)
}

// Node looks up a node by id
func (g GraphData) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
