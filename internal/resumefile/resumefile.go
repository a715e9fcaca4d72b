// Package resumefile loads resume documents for upload and inspects PDFs.
package resumefile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shivanky2822/resume-analyzer/internal/types"
)

// MaxSize is the largest resume accepted for upload.
const MaxSize = 10 << 20

// Error represents a resume that can't be loaded or inspected
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("resume %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Load reads the resume at path. An empty path returns nil with no error so
// that the caller's "no file selected" check stays in one place.
func Load(path string) (*types.ResumeFile, error) {
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "cannot open file", Cause: err}
	}
	if info.IsDir() {
		return nil, &Error{Path: path, Message: "is a directory"}
	}
	if info.Size() > MaxSize {
		return nil, &Error{Path: path, Message: fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), MaxSize)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	return &types.ResumeFile{Filename: filepath.Base(path), Data: data}, nil
}

// Inspection summarizes a resume before upload.
type Inspection struct {
	Format    string // lower-case extension without the dot
	PageCount int    // PDFs only
	TextChars int    // extractable text, PDFs only
}

// ScannedImage reports whether a PDF has pages but no extractable text,
// which scoring backends typically can't read.
func (i *Inspection) ScannedImage() bool {
	return i.Format == "pdf" && i.PageCount > 0 && i.TextChars == 0
}

// Inspect examines file. Only PDFs are opened; other formats return just the format.
func Inspect(file *types.ResumeFile) (insp *Inspection, err error) {
	if file.Empty() {
		return nil, &Error{Message: "no file"}
	}

	insp = &Inspection{Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")}
	if insp.Format != "pdf" {
		return insp, nil
	}

	// The PDF reader panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			insp = nil
			err = &Error{Path: file.Filename, Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return nil, &Error{Path: file.Filename, Message: "failed to open PDF", Cause: err}
	}

	insp.PageCount = reader.NumPage()
	for pageIndex := 1; pageIndex <= insp.PageCount; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		insp.TextChars += len(strings.TrimSpace(text))
	}
	return insp, nil
}
