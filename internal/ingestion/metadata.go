package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Source is where a job description came from.
type Source string

const (
	SourceText Source = "text"
	SourceFile Source = "file"
	SourceURL  Source = "url"
)

// Metadata describes an ingested job description.
type Metadata struct {
	Source    Source    `json:"source"`
	Location  string    `json:"location,omitempty"` // file path or URL
	Platform  string    `json:"platform,omitempty"` // detected job board, URL sources only
	Rendered  bool      `json:"rendered,omitempty"` // text came from a headless browser render
	Timestamp time.Time `json:"timestamp"`
	Hash      string    `json:"hash"` // SHA256 hex digest of the cleaned text
}

func newMetadata(source Source, location, content string) *Metadata {
	return &Metadata{
		Source:    source,
		Location:  location,
		Timestamp: time.Now().UTC(),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
