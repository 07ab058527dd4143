package calc

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionID names the shared session used when callers do not
// manage their own.
const DefaultSessionID = "default"

// Session owns one calculator: an expression builder plus its history
// ledger. All operations are serialized per session.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	builder *Builder
	ledger  *Ledger
}

func newSession(id string, historyLimit int) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		builder:   NewBuilder(),
		ledger:    NewLedger(historyLimit),
	}
}

// InputDigit appends a digit or decimal point
func (s *Session) InputDigit(tok string) Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.InputDigit(tok)
	return s.builder.Project()
}

// InputOperator appends a binary operator
func (s *Session) InputOperator(op string) Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.InputOperator(op)
	return s.builder.Project()
}

// SmartParen presses the context-sensitive parenthesis key
func (s *Session) SmartParen() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.SmartParen()
	return s.builder.Project()
}

// Backspace removes the last character or function prefix
func (s *Session) Backspace() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.Backspace()
	return s.builder.Project()
}

// ToggleSign flips the leading sign
func (s *Session) ToggleSign() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.ToggleSign()
	return s.builder.Project()
}

// Clear resets the calculator (history is kept)
func (s *Session) Clear() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.Clear()
	return s.builder.Project()
}

// ApplyFunction applies a scientific function key
func (s *Session) ApplyFunction(name string) Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.ApplyFunction(name)
	return s.builder.Project()
}

// Equals commits the expression and returns the outcome label
func (s *Session) Equals() (Projection, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome := s.builder.Equals(s.ledger)
	return s.builder.Project(), outcome
}

// State returns the current projection without mutating anything
func (s *Session) State() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builder.Project()
}

// HistoryEntries lists committed calculations, newest first
func (s *Session) HistoryEntries() []Entry {
	return s.ledger.Entries()
}

// HistoryRecall restores the entry at index as the current answer.
// Out-of-range indexes are a silent no-op.
func (s *Session) HistoryRecall(index int) (Projection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, entry, ok := s.ledger.Recall(index)
	if ok {
		s.builder.restore(entry, v)
	}
	return s.builder.Project(), ok
}

// HistoryClear empties the ledger
func (s *Session) HistoryClear() {
	s.ledger.Clear()
}

// Manager tracks calculator sessions by id
type Manager struct {
	sessions     sync.Map // map[string]*Session
	historyLimit int
}

// NewManager creates a session manager
func NewManager(historyLimit int) *Manager {
	return &Manager{historyLimit: historyLimit}
}

// Create creates a session with a fresh id
func (m *Manager) Create() *Session {
	sess := newSession(uuid.NewString(), m.historyLimit)
	m.sessions.Store(sess.ID, sess)
	return sess
}

// Get retrieves a session by id
func (m *Manager) Get(id string) (*Session, bool) {
	val, ok := m.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*Session), true
}

// GetOrCreate retrieves a session, creating it on first use
func (m *Manager) GetOrCreate(id string) *Session {
	if val, ok := m.sessions.Load(id); ok {
		return val.(*Session)
	}
	val, _ := m.sessions.LoadOrStore(id, newSession(id, m.historyLimit))
	return val.(*Session)
}

// Close removes a session
func (m *Manager) Close(id string) bool {
	_, ok := m.sessions.LoadAndDelete(id)
	return ok
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	n := 0
	m.sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
