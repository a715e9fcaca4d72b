package analysis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shivanky2822/resume-analyzer/internal/apiclient"
	"github.com/shivanky2822/resume-analyzer/internal/credstore"
	"github.com/shivanky2822/resume-analyzer/internal/history"
	"github.com/shivanky2822/resume-analyzer/internal/logging"
	"github.com/shivanky2822/resume-analyzer/internal/session"
	"github.com/shivanky2822/resume-analyzer/internal/state"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	calls  atomic.Int32
	result *types.AnalysisResult
	err    error
	last   *types.AnalysisRequest
	token  string
}

func (f *fakeAPI) Analyze(_ context.Context, token string, req *types.AnalysisRequest) (*types.AnalysisResult, error) {
	f.calls.Add(1)
	f.token = token
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result.Clone(), nil
}

type blockingRefresher struct {
	release chan struct{}
	started chan struct{}
	err     error
	done    atomic.Bool
}

func newBlockingRefresher() *blockingRefresher {
	return &blockingRefresher{release: make(chan struct{}), started: make(chan struct{}, 1)}
}

func (b *blockingRefresher) Refresh(ctx context.Context, sess *types.Session) ([]types.HistoryEntry, error) {
	b.started <- struct{}{}
	<-b.release
	b.done.Store(true)
	return nil, b.err
}

var (
	testSession = &types.Session{Token: "tok", DisplayName: "Ada"}
	testResume  = &types.ResumeFile{Filename: "cv.pdf", Data: []byte("%PDF")}
)

func TestSubmit_Preconditions(t *testing.T) {
	tests := []struct {
		name       string
		resume     *types.ResumeFile
		jd         string
		sess       *types.Session
		wantReason Reason
	}{
		{name: "no file with job description", resume: nil, jd: "Go developer", sess: testSession, wantReason: ReasonNoFile},
		{name: "no file and no job description", resume: nil, jd: "", sess: nil, wantReason: ReasonNoFile},
		{name: "empty file", resume: &types.ResumeFile{Filename: "cv.pdf"}, jd: "Go", sess: testSession, wantReason: ReasonNoFile},
		{name: "empty job description", resume: testResume, jd: "", sess: testSession, wantReason: ReasonEmptyJobDescription},
		{name: "whitespace job description", resume: testResume, jd: " \n\t ", sess: testSession, wantReason: ReasonEmptyJobDescription},
		{name: "whitespace job description without session", resume: testResume, jd: "  ", sess: nil, wantReason: ReasonEmptyJobDescription},
		{name: "no session", resume: testResume, jd: "Go developer", sess: nil, wantReason: ReasonNoSession},
		{name: "half a session", resume: testResume, jd: "Go developer", sess: &types.Session{Token: "tok"}, wantReason: ReasonNoSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{result: &types.AnalysisResult{ATSScore: 1}}
			client := NewClient(api, nil, state.New(), logging.Discard())

			_, err := client.Submit(context.Background(), tt.sess, tt.resume, tt.jd)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.wantReason, vErr.Reason)
			assert.Equal(t, int32(0), api.calls.Load())
		})
	}
}

func TestSubmit_ResultIsCurrentBeforeRefreshCompletes(t *testing.T) {
	st := state.New()
	api := &fakeAPI{result: &types.AnalysisResult{ATSScore: 75, Verdict: types.VerdictShortlisted}}
	refresher := newBlockingRefresher()
	client := NewClient(api, refresher, st, logging.Discard())

	result, err := client.Submit(context.Background(), testSession, testResume, "Go developer")
	require.NoError(t, err)
	assert.Equal(t, 75, result.ATSScore)

	<-refresher.started
	assert.False(t, refresher.done.Load())
	assert.Equal(t, 75, st.CurrentAnalysis().ATSScore)

	close(refresher.release)
	client.Wait()
	assert.True(t, refresher.done.Load())

	assert.Equal(t, "tok", api.token)
	assert.Equal(t, "Go developer", api.last.JobDescription)
}

func TestSubmit_RefreshFailureDoesNotFailSubmission(t *testing.T) {
	st := state.New()
	refresher := newBlockingRefresher()
	refresher.err = errors.New("history down")
	close(refresher.release)

	client := NewClient(&fakeAPI{result: &types.AnalysisResult{ATSScore: 40}}, refresher, st, logging.Discard())
	result, err := client.Submit(context.Background(), testSession, testResume, "Go")
	require.NoError(t, err)
	client.Wait()

	assert.Equal(t, 40, result.ATSScore)
	assert.Equal(t, 40, st.CurrentAnalysis().ATSScore)
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "server reported error",
			err:     &apiclient.APIError{Operation: "analyze", StatusCode: 400, Message: "Job description required"},
			wantMsg: "Job description required",
		},
		{
			name:    "transport failure",
			err:     &apiclient.TransportError{Operation: "analyze", Message: "request failed", Cause: errors.New("dial tcp: refused")},
			wantMsg: ErrAnalysisFailed,
		},
		{
			name:    "malformed response",
			err:     &apiclient.TransportError{Operation: "analyze", StatusCode: 200, Message: "malformed response"},
			wantMsg: ErrAnalysisFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := state.New()
			prev := &types.AnalysisResult{ATSScore: 12}
			st.SetCurrentAnalysis(prev)
			refresher := newBlockingRefresher()
			client := NewClient(&fakeAPI{err: tt.err}, refresher, st, logging.Discard())

			_, err := client.Submit(context.Background(), testSession, testResume, "Go")
			var aErr *AnalysisError
			require.True(t, errors.As(err, &aErr))
			assert.Equal(t, tt.wantMsg, aErr.Error())

			// Failed submissions leave the current analysis alone and spawn no refresh
			assert.Equal(t, 12, st.CurrentAnalysis().ATSScore)
			assert.Len(t, refresher.started, 0)
		})
	}
}

func TestLogoutThenSubmit_NoSessionWithoutRequest(t *testing.T) {
	ctx := context.Background()
	st := state.New()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"token": "tok", "name": "Ada"}`))
	}))
	defer srv.Close()

	api := apiclient.New(srv.URL, apiclient.WithLogger(logging.Discard()))
	mgr := session.NewManager(api, credstore.NewCredentialStore(credstore.NewMemoryStore()), st, logging.Discard())
	client := NewClient(api, history.NewStore(api, st, logging.Discard()), st, logging.Discard())

	_, err := mgr.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, mgr.Logout(ctx))
	before := hits.Load()

	_, err = client.Submit(ctx, mgr.Current(), testResume, "Go developer")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, ReasonNoSession, vErr.Reason)
	assert.Equal(t, before, hits.Load())
}

func TestSubmit_EndToEndRefreshesHistory(t *testing.T) {
	ctx := context.Background()
	st := state.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analyze":
			_, _ = w.Write([]byte(`{"id": 5, "ats_score": 80, "verdict": "Shortlisted", "keyword_score": 80,
				"skills_score": 80, "experience_score": 80, "education_score": 80,
				"matched_keywords": ["Go"], "missing_keywords": [], "missing_skills": []}`))
		case "/history":
			_, _ = w.Write([]byte(`[
				{"id": 5, "filename": "cv.pdf", "ats_score": 80, "verdict": "Shortlisted", "created_at": "2024-03-02T10:00:00"},
				{"id": 4, "filename": "old.pdf", "ats_score": 61, "verdict": "Shortlisted", "created_at": "2024-03-01T10:00:00"}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	api := apiclient.New(srv.URL, apiclient.WithLogger(logging.Discard()))
	store := history.NewStore(api, st, logging.Discard())
	client := NewClient(api, store, st, logging.Discard())

	result, err := client.Submit(ctx, testSession, testResume, "Go developer")
	require.NoError(t, err)
	assert.Equal(t, types.AnalysisID("5"), result.ID)

	client.Wait()
	assert.Equal(t, types.HistoryStats{TotalCount: 2, AverageScore: 71, ShortlistedCount: 2}, store.Stats())
}
