package calc

import (
	"sync"
	"time"

	"github.com/calcdeck/backend/internal/engine/format"
)

// DefaultHistoryLimit is the ledger capacity when none is configured
const DefaultHistoryLimit = 50

// Entry is one committed calculation
type Entry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Time       string `json:"time"`
}

// Ledger is an append-only bounded log of committed calculations,
// most-recent-first. Once full, the oldest entry is evicted.
type Ledger struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
}

// NewLedger creates a ledger with the given capacity
func NewLedger(limit int) *Ledger {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Ledger{limit: limit}
}

// Record prepends a new entry, evicting the oldest past capacity
func (l *Ledger) Record(expression, result string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		Expression: expression,
		Result:     result,
		Time:       time.Now().Format("15:04:05"),
	}
	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

// Entries returns a copy of all entries, newest first
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recall parses the stored result of the entry at index back into a
// number. The second return is false when the index is out of range or
// the stored result does not parse.
func (l *Ledger) Recall(index int) (float64, Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.entries) {
		return 0, Entry{}, false
	}
	entry := l.entries[index]
	v, err := format.ParseResult(entry.Result)
	if err != nil {
		return 0, Entry{}, false
	}
	return v, entry, true
}

// Len returns the number of entries
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
