package analysis

import "fmt"

// Reason identifies which submit precondition failed.
type Reason int

const (
	// ReasonNoFile means no resume file was selected.
	ReasonNoFile Reason = iota + 1
	// ReasonEmptyJobDescription means the job description is empty or whitespace.
	ReasonEmptyJobDescription
	// ReasonNoSession means nobody is logged in.
	ReasonNoSession
)

var reasonMessages = map[Reason]string{
	ReasonNoFile:              "Please select a resume file",
	ReasonEmptyJobDescription: "Please enter a job description",
	ReasonNoSession:           "no active session",
}

// ValidationError is a submit precondition failure. No request was sent.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	if msg, ok := reasonMessages[e.Reason]; ok {
		return msg
	}
	return fmt.Sprintf("invalid submission (reason %d)", int(e.Reason))
}

// ErrAnalysisFailed is the message shown when the backend gave no usable answer.
const ErrAnalysisFailed = "analysis failed"

// AnalysisError is a rejected or failed scoring request.
type AnalysisError struct {
	Message    string
	StatusCode int // 0 unless the backend answered
	Cause      error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// ErrNoAnalysis is the message of ExportError.
const ErrNoAnalysis = "no analysis available"

// ExportError means a report was requested while no analysis is held.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
