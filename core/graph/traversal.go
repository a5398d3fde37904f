package graph

import (
	"errors"

	"github.com/siherrmann/speechgraph/model"
)

// ErrNodeNotFound is returned when the traversal source is not in the graph
var ErrNodeNotFound = errors.New("node not found")

// TraversalResult contains a node and its distance from the source
type TraversalResult struct {
	Node     model.Node `json:"node"`
	Distance int        `json:"distance"`
	Path     []string   `json:"path"` // Node ids from source to this node
}

// index is an adjacency view over a graph snapshot
type index struct {
	nodes    map[string]model.Node
	outgoing map[string][]model.Link
	incoming map[string][]model.Link
}

func newIndex(data model.GraphData) *index {
	idx := &index{
		nodes:    make(map[string]model.Node, len(data.Nodes)),
		outgoing: make(map[string][]model.Link),
		incoming: make(map[string][]model.Link),
	}
	for _, n := range data.Nodes {
		idx.nodes[n.ID] = n
	}
	for _, l := range data.Links {
		idx.outgoing[l.Source] = append(idx.outgoing[l.Source], l)
		idx.incoming[l.Target] = append(idx.incoming[l.Target], l)
	}
	return idx
}

// next returns the ids reachable in one hop, in link order.
// Links are directed, followBidirectional also walks them backwards.
func (idx *index) next(id string, relationTypes []model.RelationType, followBidirectional bool) []string {
	var ids []string
	for _, l := range idx.outgoing[id] {
		if matchesType(l.Type, relationTypes) {
			ids = append(ids, l.Target)
		}
	}
	if followBidirectional {
		for _, l := range idx.incoming[id] {
			if matchesType(l.Type, relationTypes) {
				ids = append(ids, l.Source)
			}
		}
	}
	return ids
}

func matchesType(t model.RelationType, relationTypes []model.RelationType) bool {
	if len(relationTypes) == 0 {
		return true
	}
	for _, rt := range relationTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// BFS performs breadth-first search from a source node.
// An empty relationTypes filter follows every link type.
func BFS(data model.GraphData, sourceID string, maxHops int, relationTypes []model.RelationType, followBidirectional bool) ([]*TraversalResult, error) {
	idx := newIndex(data)

	// Get source node
	source, ok := idx.nodes[sourceID]
	if !ok {
		return nil, ErrNodeNotFound
	}

	// Initialize BFS
	visited := map[string]bool{sourceID: true}
	queue := []TraversalResult{{Node: source, Distance: 0, Path: []string{sourceID}}}

	var results []*TraversalResult
	for len(queue) > 0 {
		// Dequeue
		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		// Stop if we've reached max hops
		if current.Distance >= maxHops {
			continue
		}

		// Enqueue unvisited neighbors
		for _, targetID := range idx.next(current.Node.ID, relationTypes, followBidirectional) {
			// Skip if already visited
			if visited[targetID] {
				continue
			}
			// Skip links pointing outside the snapshot
			target, ok := idx.nodes[targetID]
			if !ok {
				continue
			}
			visited[targetID] = true

			// Create new path
			newPath := make([]string, len(current.Path), len(current.Path)+1)
			copy(newPath, current.Path)
			newPath = append(newPath, targetID)

			queue = append(queue, TraversalResult{
				Node:     target,
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results, nil
}

// DFS performs depth-first search from a source node
func DFS(data model.GraphData, sourceID string, maxHops int, relationTypes []model.RelationType, followBidirectional bool) ([]*TraversalResult, error) {
	idx := newIndex(data)

	// Get source node
	source, ok := idx.nodes[sourceID]
	if !ok {
		return nil, ErrNodeNotFound
	}

	var results []*TraversalResult
	visited := make(map[string]bool)
	dfsRecursive(idx, source, 0, maxHops, []string{sourceID}, relationTypes, followBidirectional, visited, &results)

	return results, nil
}

// dfsRecursive is the recursive helper for DFS
func dfsRecursive(
	idx *index,
	current model.Node,
	distance int,
	maxHops int,
	path []string,
	relationTypes []model.RelationType,
	followBidirectional bool,
	visited map[string]bool,
	results *[]*TraversalResult,
) {
	// Mark as visited
	visited[current.ID] = true

	// Add to results
	pathCopy := make([]string, len(path))
	copy(pathCopy, path)
	*results = append(*results, &TraversalResult{
		Node:     current,
		Distance: distance,
		Path:     pathCopy,
	})

	// Stop if we've reached max hops
	if distance >= maxHops {
		return
	}

	// Explore neighbors
	for _, targetID := range idx.next(current.ID, relationTypes, followBidirectional) {
		if visited[targetID] {
			continue
		}
		target, ok := idx.nodes[targetID]
		if !ok {
			continue
		}

		// Create new path
		newPath := make([]string, len(path), len(path)+1)
		copy(newPath, path)
		newPath = append(newPath, targetID)

		dfsRecursive(idx, target, distance+1, maxHops, newPath, relationTypes, followBidirectional, visited, results)
	}
}

// GetNeighbors retrieves the immediate neighbors (1-hop) of a node
func GetNeighbors(data model.GraphData, nodeID string, relationTypes []model.RelationType, followBidirectional bool) ([]model.Node, error) {
	results, err := BFS(data, nodeID, 1, relationTypes, followBidirectional)
	if err != nil {
		return nil, err
	}

	// Skip the source node
	neighbors := make([]model.Node, 0, len(results)-1)
	for _, r := range results[1:] {
		neighbors = append(neighbors, r.Node)
	}

	return neighbors, nil
}
