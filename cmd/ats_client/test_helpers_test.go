package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testToken = "tok-123"

// executeCommand runs the root command in-process with fresh flag values and
// returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupEnv points the client at a throwaway credentials file and silences logging.
func setupEnv(t *testing.T) string {
	t.Helper()
	credPath := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv("ATS_CREDENTIAL_STORE", "file")
	t.Setenv("ATS_CREDENTIALS_PATH", credPath)
	t.Setenv("ATS_LOG_LEVEL", "panic")
	t.Setenv("ATS_LOG_FILE", "")
	t.Setenv("ATS_API_BASE", "")
	t.Setenv("ATS_REPORT_PATH", "")
	t.Setenv("DATABASE_URL", "")
	return credPath
}

type fakeBackend struct {
	*httptest.Server

	mu      sync.Mutex
	analyze int
	history []map[string]any
}

func (fb *fakeBackend) analyzeCalls() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.analyze
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": "Invalid credentials"}`))
			return
		}
		writeJSON(w, map[string]string{"token": testToken, "name": "Ada"})
	})
	mux.HandleFunc("POST /signup", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, map[string]string{"token": testToken, "name": body["name"]})
	})
	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		fb.mu.Lock()
		defer fb.mu.Unlock()
		fb.analyze++
		fb.history = append([]map[string]any{{
			"id": 7, "filename": "cv.pdf", "ats_score": 72, "verdict": "Shortlisted",
			"created_at": "2024-03-01T10:20:30",
		}}, fb.history...)
		writeJSON(w, analysisBody())
	})
	mux.HandleFunc("GET /history", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		fb.mu.Lock()
		defer fb.mu.Unlock()
		entries := fb.history
		if entries == nil {
			entries = []map[string]any{}
		}
		writeJSON(w, entries)
	})
	mux.HandleFunc("GET /analysis/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		if r.PathValue("id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "Analysis not found"}`))
			return
		}
		body := analysisBody()
		body["filename"] = "cv.pdf"
		body["created_at"] = "2024-03-01T10:20:30"
		body["job_description"] = "Python developer"
		writeJSON(w, body)
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") == "Bearer "+testToken {
		return true
	}
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error": "Missing Authorization Header"}`))
	return false
}

func analysisBody() map[string]any {
	return map[string]any{
		"id":               7,
		"ats_score":        72,
		"verdict":          "Shortlisted",
		"keyword_score":    70,
		"skills_score":     68,
		"experience_score": 80,
		"education_score":  60,
		"matched_keywords": []string{"python", "sql"},
		"missing_keywords": []string{"docker"},
		"missing_skills":   []string{},
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func contains(out string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(out, p) {
			return false
		}
	}
	return true
}
