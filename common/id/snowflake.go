package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init sets up the package-wide snowflake node. Each process gets its own
// node ID (the API server and the worker use different ones) so IDs stay
// unique across instances. A second Init is a no-op.
func Init(nodeID int64) error {
	mu.Lock()
	defer mu.Unlock()
	if node != nil {
		return nil
	}
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	node = n
	return nil
}

// New returns a time-ordered unique int64. Init must run first.
func New() int64 {
	return node.Generate().Int64()
}
