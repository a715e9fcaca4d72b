package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shivanky2822/resume-analyzer/internal/fetch"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmpty is returned when a source yields no text
	ErrEmpty = errors.New("job description is empty")
	// ErrHTTPRequestFailed is returned when the job page can't be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when the page HTML can't be parsed
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// browserTimeout bounds a headless render.
const browserTimeout = 45 * time.Second

// JobDescription is cleaned job description text with where it came from.
type JobDescription struct {
	Text string
	Meta *Metadata
}

// Ingester resolves job descriptions from their sources.
type Ingester struct {
	fetcher    *fetch.Fetcher
	useBrowser bool
	log        *logrus.Entry
}

// NewIngester creates an Ingester. With useBrowser, pages whose plain fetch
// yields too little text are re-rendered in headless Chrome.
func NewIngester(fetcher *fetch.Fetcher, useBrowser bool, log *logrus.Logger) *Ingester {
	return &Ingester{
		fetcher:    fetcher,
		useBrowser: useBrowser,
		log:        log.WithField("component", "ingestion"),
	}
}

// FromText cleans text typed or pasted by the user.
func (i *Ingester) FromText(text string) (*JobDescription, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmpty
	}
	return &JobDescription{Text: cleaned, Meta: newMetadata(SourceText, "", cleaned)}, nil
}

// FromFile reads a plain text, Markdown or saved HTML job description.
func (i *Ingester) FromFile(path string) (*JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = fetch.ExtractMainText(text, fetch.JobPostingSelectors(), fetch.PlatformNoiseSelectors(fetch.PlatformUnknown)...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	i.log.WithFields(logrus.Fields{"path": path, "chars": len(cleaned)}).Debug("job description loaded from file")
	return &JobDescription{Text: cleaned, Meta: newMetadata(SourceFile, path, cleaned)}, nil
}

// FromURL fetches a job posting and extracts its description using
// platform-specific selectors.
func (i *Ingester) FromURL(ctx context.Context, urlStr string) (*JobDescription, error) {
	platform := fetch.DetectPlatform(urlStr)
	log := i.log.WithFields(logrus.Fields{"url": urlStr, "platform": platform})

	page, err := i.fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(page.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	log.WithField("chars", len(text)).Debug("extracted job page text")

	rendered := false
	if i.useBrowser && fetch.ShouldUseBrowser(text) {
		log.Debugf("content too short (%d chars < %d), rendering in browser", len(text), fetch.MinContentLength)
		html, err := i.fetcher.Render(ctx, urlStr, browserTimeout)
		if err != nil {
			// Keep the plain HTTP text
			log.WithError(err).Warn("browser rendering failed")
		} else if browserText, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); err != nil {
			log.WithError(err).Warn("browser content extraction failed")
		} else {
			text = browserText
			rendered = true
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%s: %w", urlStr, ErrEmpty)
	}

	meta := newMetadata(SourceURL, urlStr, cleaned)
	meta.Platform = string(platform)
	meta.Rendered = rendered
	return &JobDescription{Text: cleaned, Meta: meta}, nil
}
