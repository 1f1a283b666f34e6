package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/draft-league-board/internal/domain/standings"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// FetchFailedText is the page-level indicator shown after a failed poll.
const FetchFailedText = "Failed to fetch data.."

// Snapshot is an immutable view of the state cell. Table is shared between
// snapshots and must not be mutated by readers.
type Snapshot struct {
	Table         *standings.Table
	Version       uint64
	Status        Status
	Title         string
	LastError     string
	UpdatedAt     time.Time
	LastAttemptAt time.Time
}

// Loaded reports whether a table has ever been installed.
func (s Snapshot) Loaded() bool {
	return s.Table != nil
}

// FailureText is empty unless the most recent poll failed.
func (s Snapshot) FailureText() string {
	if s.Status != StatusFailed {
		return ""
	}
	return FetchFailedText
}

// TableStore holds the single current standings table. The table and the
// status signal are sequenced separately: a failed poll never blocks an older
// poll's table from landing, only a newer table does.
type TableStore struct {
	mu           sync.Mutex
	current      atomic.Pointer[Snapshot]
	installedSeq uint64
	signalSeq    uint64
	now       func() time.Time
	nextSubID int
	listeners map[int]func(Snapshot)
}

func NewTableStore() *TableStore {
	s := &TableStore{
		now:       time.Now,
		listeners: make(map[int]func(Snapshot)),
	}
	s.current.Store(&Snapshot{Status: StatusLoading})
	return s
}

// Snapshot never blocks on writers.
func (s *TableStore) Snapshot() Snapshot {
	return *s.current.Load()
}

// Install replaces the table wholesale. It returns false when a table from a
// newer poll is already installed.
func (s *TableStore) Install(seq uint64, table *standings.Table) bool {
	if table == nil {
		return false
	}

	s.mu.Lock()
	if seq <= s.installedSeq {
		s.mu.Unlock()
		return false
	}
	s.installedSeq = seq
	if seq > s.signalSeq {
		s.signalSeq = seq
	}
	now := s.now()
	next := &Snapshot{
		Table:         table,
		Version:       seq,
		Status:        StatusReady,
		Title:         table.Name,
		UpdatedAt:     now,
		LastAttemptAt: now,
	}
	s.current.Store(next)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, *next)
	return true
}

// Fail records a failed poll. The previous table is retained untouched.
// Failures older than the installed table or the latest signal are ignored.
func (s *TableStore) Fail(seq uint64, err error) bool {
	s.mu.Lock()
	if seq <= s.signalSeq || seq <= s.installedSeq {
		s.mu.Unlock()
		return false
	}
	s.signalSeq = seq
	prev := s.current.Load()
	next := *prev
	next.Status = StatusFailed
	next.LastAttemptAt = s.now()
	next.LastError = ""
	if err != nil {
		next.LastError = err.Error()
	}
	s.current.Store(&next)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, next)
	return true
}

// Subscribe registers fn for every accepted state change.
func (s *TableStore) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *TableStore) listenersLocked() []func(Snapshot) {
	if len(s.listeners) == 0 {
		return nil
	}
	out := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
