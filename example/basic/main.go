package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/siherrmann/speechgraph"
	"github.com/siherrmann/speechgraph/model"
)

// Finalized utterances as a speech recognizer would deliver them
var utterances = []string{
	"Marie Curie studied at Sorbonne University.",
	"Marie Curie lives in Paris.",
	"Pierre Curie met Marie in Paris.",
	"Alice works at Acme and Bob knows Alice.",
}

func main() {
	g, err := speechgraph.NewSpeechGraph(model.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to create speechgraph: %v", err)
	}

	// An interim result is recorded but not extracted with the default config
	interim := model.NewSegment("Alice works", false)
	g.Push(interim)

	for _, text := range utterances {
		result := g.Ingest(text)
		fmt.Printf("%-45s -> %d entities, %d relationships\n", text, len(result.Entities), len(result.Relationships))
	}

	data := g.Graph()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		log.Fatalf("Failed to encode graph: %v", err)
	}

	for _, n := range data.Nodes {
		if n.Label != "Alice" {
			continue
		}
		results, err := g.Neighbors(n.ID, 2, nil)
		if err != nil {
			log.Fatalf("Failed to traverse graph: %v", err)
		}
		for _, r := range results[1:] {
			fmt.Printf("Alice -> %s (distance %d)\n", r.Node.Label, r.Distance)
		}
	}

	g.Clear()
	fmt.Printf("After clear: %d nodes\n", len(g.Graph().Nodes))
}
