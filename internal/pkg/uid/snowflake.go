package uid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates 63-bit ids from a millisecond timestamp, node and sequence.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a generator for node. A negative node picks a random one,
// which is fine for single-replica deployments.
func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 {
		var b [2]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("uid: random node: %w", err)
		}
		node = int64(binary.BigEndian.Uint16(b[:]) % 1024)
	}

	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("uid: snowflake node %d: %w", node, err)
	}

	return &Snowflake{node: n}, nil
}

// Generate returns the next id.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
