// Package history fetches past analyses for the active session and derives
// aggregate statistics from them.
package history

import (
	"context"
	"errors"

	"github.com/shivanky2822/resume-analyzer/internal/apiclient"
	"github.com/shivanky2822/resume-analyzer/internal/state"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/sirupsen/logrus"
)

// API is the subset of the backend used for history.
type API interface {
	History(ctx context.Context, token string) ([]types.HistoryEntry, error)
	Analysis(ctx context.Context, token string, id types.AnalysisID) (*types.StoredAnalysis, error)
}

// Store keeps the last fetched history entry set in the shared AppState.
type Store struct {
	api   API
	state *state.AppState
	log   *logrus.Entry
}

// NewStore creates a Store.
func NewStore(api API, st *state.AppState, log *logrus.Logger) *Store {
	return &Store{
		api:   api,
		state: st,
		log:   log.WithField("component", "history"),
	}
}

// Refresh fetches the entry set for sess and replaces the held one wholesale.
// Entries keep the backend's order (most recent first). On failure the held set
// is left untouched and the error is logged before being returned.
func (s *Store) Refresh(ctx context.Context, sess *types.Session) ([]types.HistoryEntry, error) {
	if !sess.Valid() {
		err := &HistoryError{Op: "refresh", Message: ErrNoSession}
		s.log.Warn(err.Error())
		return nil, err
	}

	entries, err := s.api.History(ctx, sess.Token)
	if err != nil {
		herr := &HistoryError{Op: "refresh", Message: messageFor(err, "failed to load history"), Cause: err}
		s.log.WithError(err).Warn("history refresh failed; keeping previous entries")
		return nil, herr
	}

	for _, e := range entries {
		if e.CreatedAt.Unparsed != "" {
			s.log.WithFields(logrus.Fields{
				"id":         string(e.ID),
				"created_at": e.CreatedAt.Unparsed,
			}).Warn("unrecognized history timestamp")
		}
	}
	s.state.ReplaceHistory(entries)
	s.log.WithField("count", len(entries)).Debug("history refreshed")
	return entries, nil
}

// Entries returns the held entry set. It is empty until a refresh succeeds.
func (s *Store) Entries() []types.HistoryEntry {
	entries, _ := s.state.History()
	return entries
}

// Loaded reports whether any refresh has succeeded since startup or logout.
func (s *Store) Loaded() bool {
	_, fetched := s.state.History()
	return fetched
}

// Stats derives aggregates from the held entry set.
func (s *Store) Stats() types.HistoryStats {
	return types.ComputeStats(s.Entries())
}

// Lookup fetches one past analysis by id. It does not change the current analysis.
func (s *Store) Lookup(ctx context.Context, sess *types.Session, id types.AnalysisID) (*types.StoredAnalysis, error) {
	if !sess.Valid() {
		return nil, &HistoryError{Op: "lookup", Message: ErrNoSession}
	}
	if id == "" {
		return nil, &HistoryError{Op: "lookup", Message: "analysis id is empty"}
	}

	stored, err := s.api.Analysis(ctx, sess.Token, id)
	if err != nil {
		s.log.WithError(err).WithField("id", string(id)).Debug("lookup failed")
		return nil, &HistoryError{Op: "lookup", Message: messageFor(err, "failed to load analysis"), Cause: err}
	}
	return stored, nil
}

// messageFor prefers the server's own error text.
func messageFor(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
