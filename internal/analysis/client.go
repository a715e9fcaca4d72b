// Package analysis submits resumes for scoring and holds the current result.
package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/shivanky2822/resume-analyzer/internal/apiclient"
	"github.com/shivanky2822/resume-analyzer/internal/state"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// API is the subset of the backend used for scoring.
type API interface {
	Analyze(ctx context.Context, token string, req *types.AnalysisRequest) (*types.AnalysisResult, error)
}

// HistoryRefresher refreshes the history entry set. Its errors are non-fatal
// and are expected to be logged by the implementation.
type HistoryRefresher interface {
	Refresh(ctx context.Context, sess *types.Session) ([]types.HistoryEntry, error)
}

// Client submits analyses. A successful submission becomes the current
// analysis and then kicks off a background history refresh.
type Client struct {
	api     API
	history HistoryRefresher
	state   *state.AppState
	log     *logrus.Entry

	background errgroup.Group
}

// NewClient creates a Client.
func NewClient(api API, history HistoryRefresher, st *state.AppState, log *logrus.Logger) *Client {
	return &Client{
		api:     api,
		history: history,
		state:   st,
		log:     log.WithField("component", "analysis"),
	}
}

// Submit scores resume against jobDescription under sess.
//
// Preconditions are checked in order (file, job description, session) and
// fail with a ValidationError before any request is sent. There is no retry.
func (c *Client) Submit(ctx context.Context, sess *types.Session, resume *types.ResumeFile, jobDescription string) (*types.AnalysisResult, error) {
	if resume.Empty() {
		return nil, &ValidationError{Reason: ReasonNoFile}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Reason: ReasonEmptyJobDescription}
	}
	if !sess.Valid() {
		return nil, &ValidationError{Reason: ReasonNoSession}
	}

	log := c.log.WithField("file", resume.Filename)
	log.WithField("bytes", len(resume.Data)).Debug("submitting analysis")

	result, err := c.api.Analyze(ctx, sess.Token, &types.AnalysisRequest{
		Resume:         resume,
		JobDescription: jobDescription,
	})
	if err != nil {
		aerr := toAnalysisError(err)
		log.WithError(err).Debug("analysis failed")
		return nil, aerr
	}

	// The result is current before the refresh is spawned, so a reader right
	// after Submit returns always sees it.
	c.state.SetCurrentAnalysis(result)
	log.WithFields(logrus.Fields{
		"ats_score": result.ATSScore,
		"verdict":   string(result.Verdict),
	}).Info("analysis complete")

	c.refreshInBackground(ctx, sess)
	return result.Clone(), nil
}

// Wait blocks until every background refresh spawned so far has finished.
func (c *Client) Wait() {
	_ = c.background.Wait()
}

func (c *Client) refreshInBackground(ctx context.Context, sess *types.Session) {
	if c.history == nil {
		return
	}
	// Detached from the caller's cancellation; the submission already succeeded.
	bgCtx := context.WithoutCancel(ctx)
	sessCopy := *sess
	c.background.Go(func() error {
		// Errors are logged by the refresher and never fail the submission
		_, _ = c.history.Refresh(bgCtx, &sessCopy)
		return nil
	})
}

func toAnalysisError(err error) *AnalysisError {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return &AnalysisError{Message: apiErr.Message, StatusCode: apiErr.StatusCode, Cause: err}
	}
	var transportErr *apiclient.TransportError
	if errors.As(err, &transportErr) {
		return &AnalysisError{Message: ErrAnalysisFailed, StatusCode: transportErr.StatusCode, Cause: err}
	}
	return &AnalysisError{Message: ErrAnalysisFailed, Cause: err}
}
