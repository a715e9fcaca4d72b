package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shivanky2822/resume-analyzer/internal/apiclient"
	"github.com/shivanky2822/resume-analyzer/internal/credstore"
	"github.com/shivanky2822/resume-analyzer/internal/logging"
	"github.com/shivanky2822/resume-analyzer/internal/state"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	calls    int
	resp     *types.AuthResponse
	err      error
	lastName string
}

func (f *fakeAuth) Login(_ context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeAuth) Signup(_ context.Context, req *types.SignupRequest) (*types.AuthResponse, error) {
	f.calls++
	f.lastName = req.Name
	return f.resp, f.err
}

func newManager(auth AuthClient) (*Manager, *credstore.CredentialStore, *state.AppState) {
	creds := credstore.NewCredentialStore(credstore.NewMemoryStore())
	st := state.New()
	return NewManager(auth, creds, st, logging.Discard()), creds, st
}

func TestLogin_ThenRestoreYieldsSameSession(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{resp: &types.AuthResponse{Token: "tok-1", Name: "Ada"}}
	mgr, creds, _ := newManager(auth)

	sess, err := mgr.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)

	// A fresh process restores from the same store
	restarted := NewManager(auth, creds, state.New(), logging.Discard())
	restored, err := restarted.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess, restored)
	assert.Equal(t, sess, restarted.Current())
}

func TestLogin_PublishesSessionBeforeReturning(t *testing.T) {
	auth := &fakeAuth{resp: &types.AuthResponse{Token: "tok-1", Name: "Ada"}}
	mgr, _, st := newManager(auth)

	_, err := mgr.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, &types.Session{Token: "tok-1", DisplayName: "Ada"}, st.Session())
}

func TestRestore_NoSession(t *testing.T) {
	mgr, _, _ := newManager(&fakeAuth{})
	sess, err := mgr.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Nil(t, mgr.Current())

	// Only one half stored still means no session
	mem := credstore.NewMemoryStore()
	require.NoError(t, mem.Set(context.Background(), credstore.KeyToken, "tok"))
	mgr = NewManager(&fakeAuth{}, credstore.NewCredentialStore(mem), state.New(), logging.Discard())
	sess, err = mgr.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSignup_ShortPasswordSendsNothing(t *testing.T) {
	auth := &fakeAuth{resp: &types.AuthResponse{Token: "t", Name: "Ada"}}
	mgr, _, st := newManager(auth)

	_, err := mgr.Signup(context.Background(), "Ada", "ada@example.com", "12345")
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "password", vErr.Field)
	assert.Equal(t, 0, auth.calls)
	assert.Nil(t, st.Session())
}

func TestSignup_MissingName(t *testing.T) {
	auth := &fakeAuth{}
	mgr, _, _ := newManager(auth)

	_, err := mgr.Signup(context.Background(), "", "ada@example.com", "secret")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "name", vErr.Field)
	assert.Equal(t, 0, auth.calls)
}

func TestSignup_Success(t *testing.T) {
	auth := &fakeAuth{resp: &types.AuthResponse{Token: "tok", Name: "Ada Lovelace"}}
	mgr, _, _ := newManager(auth)

	sess, err := mgr.Signup(context.Background(), "Ada Lovelace", "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", sess.DisplayName)
	assert.Equal(t, "Ada Lovelace", auth.lastName)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind AuthErrorKind
		wantMsg  string
	}{
		{
			name:     "server rejects credentials",
			err:      &apiclient.APIError{Operation: "login", StatusCode: 401, Message: "Invalid email or password"},
			wantKind: AuthRejected,
			wantMsg:  "Invalid email or password",
		},
		{
			name:     "backend unreachable",
			err:      &apiclient.TransportError{Operation: "login", Message: "request failed", Cause: errors.New("connection refused")},
			wantKind: AuthUnavailable,
			wantMsg:  ErrAuthUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, _, st := newManager(&fakeAuth{err: tt.err})

			_, err := mgr.Login(context.Background(), "ada@example.com", "secret")
			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.wantKind, authErr.Kind)
			assert.Equal(t, tt.wantMsg, authErr.Error())
			assert.Equal(t, tt.wantKind == AuthRejected, IsRejected(err))
			assert.Nil(t, st.Session())
		})
	}
}

func TestLogin_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid credentials"}`))
	}))
	defer srv.Close()

	mgr, _, _ := newManager(apiclient.New(srv.URL, apiclient.WithLogger(logging.Discard())))
	_, err := mgr.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsRejected(err))
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{resp: &types.AuthResponse{Token: "tok", Name: "Ada"}}
	mgr, creds, st := newManager(auth)

	_, err := mgr.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	st.SetCurrentAnalysis(&types.AnalysisResult{ATSScore: 70})
	st.ReplaceHistory([]types.HistoryEntry{{Filename: "cv.pdf"}})

	require.NoError(t, mgr.Logout(ctx))
	require.NoError(t, mgr.Logout(ctx))

	assert.Nil(t, mgr.Current())
	assert.Nil(t, st.CurrentAnalysis())
	entries, fetched := st.History()
	assert.Empty(t, entries)
	assert.False(t, fetched)

	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
