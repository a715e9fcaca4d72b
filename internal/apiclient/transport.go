package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shivanky2822/resume-analyzer/internal/schemas"
	"github.com/shivanky2822/resume-analyzer/internal/types"
	"github.com/sirupsen/logrus"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

func (c *Client) postJSON(ctx context.Context, path, token string, payload any, schema schemas.Name, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, token, schema, out, operation)
}

func (c *Client) postMultipart(ctx context.Context, path, token, fileField string, file *types.ResumeFile, fields map[string]string, schema schemas.Name, out any, operation string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filepath.Base(file.Filename)))
		h.Set("Content-Type", contentTypeFor(file.Filename))
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create %s file part: %w", operation, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return fmt.Errorf("write %s file part: %w", operation, err)
		}
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write %s field %s: %w", operation, name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s multipart body: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, token, schema, out, operation)
}

func (c *Client) getJSON(ctx context.Context, path, token string, schema schemas.Name, out any, operation string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	return c.do(req, token, schema, out, operation)
}

// do sends req with the bearer token and request id, then decodes a 2xx body into out
// after checking it against schema.
func (c *Client) do(req *http.Request, token string, schema schemas.Name, out any, operation string) error {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.WithFields(logrus.Fields{
		"operation":  operation,
		"method":     req.Method,
		"path":       req.URL.Path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return &TransportError{Operation: operation, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		log.WithError(err).Debug("reading response failed")
		return &TransportError{Operation: operation, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}
	log.Debug("response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return formatHTTPError(operation, resp.StatusCode, body)
	}

	if err := schemas.Validate(schema, body); err != nil {
		return &TransportError{Operation: operation, StatusCode: resp.StatusCode, Message: "malformed response", Cause: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Operation: operation, StatusCode: resp.StatusCode, Message: "malformed response", Cause: err}
	}
	return nil
}

// formatHTTPError turns a non-2xx response into an APIError when the body carries
// an error message, and a TransportError otherwise.
func formatHTTPError(operation string, status int, body []byte) error {
	var payload types.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return &APIError{Operation: operation, StatusCode: status, Message: payload.Error}
	}

	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}
	if snippet == "" {
		snippet = http.StatusText(status)
	}
	return &TransportError{Operation: operation, StatusCode: status, Message: "unexpected status: " + snippet}
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
