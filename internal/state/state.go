// Package state holds the process-wide application state shared by the session,
// analysis and history components: the active session, the current analysis and
// the last fetched history entries.
//
// Each entity is replaced wholesale; the last write wins. The mutex only keeps
// reads and writes memory-safe when a background history refresh overlaps with a
// foreground command.
package state

import (
	"sync"

	"github.com/shivanky2822/resume-analyzer/internal/types"
)

// AppState holds the entities shared between components.
type AppState struct {
	mu      sync.RWMutex
	session *types.Session
	current *types.AnalysisResult
	history []types.HistoryEntry
	fetched bool
}

// New returns an empty AppState: no session, no analysis, no history.
func New() *AppState {
	return &AppState{}
}

// Session returns a copy of the active session, or nil.
func (s *AppState) Session() *types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// SetSession publishes the active session. A nil session clears it.
func (s *AppState) SetSession(session *types.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session == nil {
		s.session = nil
		return
	}
	cp := *session
	s.session = &cp
}

// CurrentAnalysis returns a copy of the current analysis, or nil.
func (s *AppState) CurrentAnalysis() *types.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// SetCurrentAnalysis replaces the current analysis.
func (s *AppState) SetCurrentAnalysis(result *types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = result.Clone()
}

// History returns a copy of the last fetched entries and whether any fetch has succeeded.
func (s *AppState) History() ([]types.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.HistoryEntry(nil), s.history...), s.fetched
}

// ReplaceHistory swaps in a freshly fetched entry set. Entries are never merged.
func (s *AppState) ReplaceHistory(entries []types.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]types.HistoryEntry(nil), entries...)
	s.fetched = true
}

// Reset returns every entity to its initial state.
func (s *AppState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.current = nil
	s.history = nil
	s.fetched = false
}
