// Package session owns the current user's identity: it restores it from the
// credential store at startup and moves it through login, signup and logout.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/shivanky2822/resume-analyzer/internal/apiclient"
	"github.com/shivanky2822/resume-analyzer/internal/credstore"
	"github.com/shivanky2822/resume-analyzer/internal/state"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/sirupsen/logrus"
)

// AuthClient is the subset of the backend API used for authentication.
type AuthClient interface {
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	Signup(ctx context.Context, req *types.SignupRequest) (*types.AuthResponse, error)
}

// Manager drives session transitions and publishes the result to the shared AppState.
type Manager struct {
	auth  AuthClient
	creds *credstore.CredentialStore
	state *state.AppState
	log   *logrus.Entry
}

// NewManager creates a Manager.
func NewManager(auth AuthClient, creds *credstore.CredentialStore, st *state.AppState, log *logrus.Logger) *Manager {
	return &Manager{
		auth:  auth,
		creds: creds,
		state: st,
		log:   log.WithField("component", "session"),
	}
}

// Current returns the active session, or nil.
func (m *Manager) Current() *types.Session {
	return m.state.Session()
}

// Restore loads the persisted credential. It returns nil with no error when
// either half is missing; a partial session is never established.
func (m *Manager) Restore(ctx context.Context) (*types.Session, error) {
	sess, err := m.creds.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if sess == nil {
		m.state.SetSession(nil)
		m.log.Debug("no stored session")
		return nil, nil
	}

	m.state.SetSession(sess)
	m.log.WithField("user", sess.DisplayName).Debug("session restored")
	return sess, nil
}

// Login authenticates with email and password.
func (m *Manager) Login(ctx context.Context, email, password string) (*types.Session, error) {
	req := &types.LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	resp, err := m.auth.Login(ctx, req)
	if err != nil {
		return nil, m.authFailure("login", err)
	}
	return m.establish(ctx, resp)
}

// Signup creates an account. The password length is checked before any request is sent.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (*types.Session, error) {
	if len(password) < types.MinPasswordLength {
		return nil, &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters", types.MinPasswordLength),
		}
	}
	req := &types.SignupRequest{Name: name, Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	resp, err := m.auth.Signup(ctx, req)
	if err != nil {
		return nil, m.authFailure("signup", err)
	}
	return m.establish(ctx, resp)
}

// Logout clears the stored credential and resets the shared state, including the
// current analysis and history. It always leaves the process logged out; a store
// failure is returned after the in-memory state has been cleared.
func (m *Manager) Logout(ctx context.Context) error {
	m.state.Reset()
	if err := m.creds.Clear(ctx); err != nil {
		m.log.WithError(err).Warn("failed to clear stored credential")
		return fmt.Errorf("failed to clear stored credential: %w", err)
	}
	m.log.Debug("logged out")
	return nil
}

// establish persists the session and publishes it before returning, so that a
// call made right after login or signup already sees it.
func (m *Manager) establish(ctx context.Context, resp *types.AuthResponse) (*types.Session, error) {
	sess := &types.Session{Token: resp.Token, DisplayName: resp.Name}
	if err := m.creds.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	m.state.SetSession(sess)
	m.log.WithField("user", sess.DisplayName).Info("session established")
	return sess, nil
}

func (m *Manager) authFailure(operation string, err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		m.log.WithField("status", apiErr.StatusCode).Debugf("%s rejected: %s", operation, apiErr.Message)
		return &AuthError{Kind: AuthRejected, Message: apiErr.Message, Cause: err}
	}
	m.log.WithError(err).Warnf("%s failed", operation)
	return &AuthError{Kind: AuthUnavailable, Message: ErrAuthUnavailable, Cause: err}
}
