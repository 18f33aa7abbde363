package runtime

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var keyMu sync.Mutex
var keyEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

// NewKey returns a fresh identity key for keyed reconciliation.
// Keys are ULIDs: unique, sortable by creation time, and stable for
// the lifetime of the data they identify. Generate one per logical
// list item, not per rebuild.
func NewKey() string {
	keyMu.Lock()
	defer keyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), keyEntropy).String()
}
