package product

import (
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
)

const lockStripes = 64

// recordLocks serializes writers of the same product id.
type recordLocks struct {
	stripes [lockStripes]sync.Mutex
}

func (l *recordLocks) lock(id uuid.UUID) func() {
	h := fnv.New32a()
	_, _ = h.Write(id[:])
	mu := &l.stripes[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
