package intel

import (
	"crypto/sha256"
	"fmt"
	"sync"
)

// Fingerprint hashes an item's canonical link into a fixed-size
// identity used for deduplication.
func Fingerprint(link string) string {
	sum := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", sum)[:32]
}

// Ledger is a bounded in-memory set of fingerprints. When the set
// reaches capacity it is cleared wholesale before the next insert, so
// memory stays bounded at the cost of possibly re-admitting old items
// after a clear. Each ingestion loop owns its own ledger; nothing is
// persisted across restarts.
type Ledger struct {
	mu       sync.Mutex
	capacity int
	seen     map[string]struct{}
}

func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Ledger{
		capacity: capacity,
		seen:     make(map[string]struct{}),
	}
}

func (l *Ledger) Seen(fp string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[fp]
	return ok
}

func (l *Ledger) Record(fp string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.seen) >= l.capacity {
		l.seen = make(map[string]struct{})
	}
	l.seen[fp] = struct{}{}
}

func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
