// Package idgen issues snowflake ids for deals and uploaded images.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator issues time-ordered unique ids. Safe for concurrent use.
type Generator struct {
	node *snowflake.Node
}

// New creates a Generator for the given node (0-1023). Each running instance
// must use a distinct node id.
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node %d: %w", nodeID, err)
	}
	return &Generator{node: node}, nil
}

// Next returns a new id. The high bits are a millisecond timestamp, so ids
// sort by creation time.
func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}
