package analysis

import (
	"github.com/shivanky2822/resume-analyzer/internal/rendering"
	"github.com/shivanky2822/resume-analyzer/internal/state"
	"github.com/shivanky2822/resume-analyzer/internal/types"
)

// Session exposes the current analysis held in the AppState. It only reads;
// the current analysis is set by Client.Submit.
type Session struct {
	state *state.AppState
}

// NewSession creates a Session over st.
func NewSession(st *state.AppState) *Session {
	return &Session{state: st}
}

// Current returns the held result, or nil.
func (s *Session) Current() *types.AnalysisResult {
	return s.state.CurrentAnalysis()
}

// ExportReport renders the held result as the plain-text report.
// It has no side effects; saving the text is up to the caller.
func (s *Session) ExportReport() (string, error) {
	current := s.state.CurrentAnalysis()
	if current == nil {
		return "", &ExportError{Message: ErrNoAnalysis}
	}
	report, err := rendering.RenderReport(current)
	if err != nil {
		return "", &ExportError{Message: "failed to render report", Cause: err}
	}
	return report, nil
}
