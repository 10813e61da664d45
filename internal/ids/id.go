package ids

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	ulidEntropyMu sync.Mutex
)

// NewRollID returns a lexicographically sortable id for one roll attempt.
func NewRollID() string {
	return newID(time.Now())
}

func newID(at time.Time) string {
	ulidEntropyMu.Lock()
	defer ulidEntropyMu.Unlock()
	return "roll_" + ulid.MustNew(ulid.Timestamp(at), ulidEntropy).String()
}
