package sim

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator hands out IDs for events and other run objects.
type IDGenerator interface {
	Generate() string
}

// NewSequentialIDGenerator returns a generator of "1", "2", ... IDs. Two runs
// of the same input produce the same IDs, which keeps event traces diffable.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewUniqueIDGenerator returns a generator of globally unique IDs, for objects
// seen outside the process such as monitor progress bars.
func NewUniqueIDGenerator() IDGenerator {
	return uniqueIDGenerator{}
}

var eventIDs = NewSequentialIDGenerator()

type sequentialIDGenerator struct {
	nextID atomic.Uint64
}

func (g *sequentialIDGenerator) Generate() string {
	return strconv.FormatUint(g.nextID.Add(1), 10)
}

type uniqueIDGenerator struct{}

func (uniqueIDGenerator) Generate() string {
	return xid.New().String()
}
