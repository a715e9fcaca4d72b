// Package apiclient talks to the resume scoring backend over HTTP.
package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/shivanky2822/resume-analyzer/internal/schemas"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/sirupsen/logrus"
)

// Client is an HTTP client for the scoring backend.
// Requests are never retried and carry no client-side timeout; the caller's
// context is the only way a request ends early.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) {
		c.log = log.WithField("component", "apiclient")
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logrus.NewEntry(logrus.StandardLogger()).WithField("component", "apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Signup registers a new account via POST /signup.
func (c *Client) Signup(ctx context.Context, req *types.SignupRequest) (*types.AuthResponse, error) {
	var out types.AuthResponse
	if err := c.postJSON(ctx, "/signup", "", req, schemas.AuthResponse, &out, "signup"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token via POST /login.
func (c *Client) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	var out types.AuthResponse
	if err := c.postJSON(ctx, "/login", "", req, schemas.AuthResponse, &out, "login"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analyze uploads the resume and job description via POST /analyze.
func (c *Client) Analyze(ctx context.Context, token string, req *types.AnalysisRequest) (*types.AnalysisResult, error) {
	var out types.AnalysisResult
	fields := map[string]string{"job_description": req.JobDescription}
	if err := c.postMultipart(ctx, "/analyze", token, "resume", req.Resume, fields, schemas.AnalysisResult, &out, "analyze"); err != nil {
		return nil, err
	}
	return &out, nil
}

// History lists past analyses via GET /history, most recent first.
func (c *Client) History(ctx context.Context, token string) ([]types.HistoryEntry, error) {
	var out []types.HistoryEntry
	if err := c.getJSON(ctx, "/history", token, schemas.HistoryList, &out, "history"); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.HistoryEntry{}
	}
	return out, nil
}

// Analysis fetches one stored analysis via GET /analysis/{id}.
func (c *Client) Analysis(ctx context.Context, token string, id types.AnalysisID) (*types.StoredAnalysis, error) {
	var out types.StoredAnalysis
	path := "/analysis/" + url.PathEscape(string(id))
	if err := c.getJSON(ctx, path, token, schemas.StoredAnalysis, &out, "analysis lookup"); err != nil {
		return nil, err
	}
	return &out, nil
}
