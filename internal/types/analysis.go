package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Verdict is the backend's classification of an analysis. The client never derives it from the score.
type Verdict string

const (
	// VerdictShortlisted marks a resume the backend considers a match
	VerdictShortlisted Verdict = "Shortlisted"
	// VerdictRejected marks a resume the backend does not consider a match
	VerdictRejected Verdict = "Rejected"
)

// IsShortlisted reports whether the verdict is exactly Shortlisted.
// Any other label ("Rejected", "Not Shortlisted", ...) counts as not shortlisted.
func (v Verdict) IsShortlisted() bool {
	return v == VerdictShortlisted
}

// AnalysisID identifies a stored analysis. Backends send it either as a number or a string.
type AnalysisID string

// UnmarshalJSON accepts JSON numbers and strings.
func (id *AnalysisID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = AnalysisID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("analysis id must be a number or string: %w", err)
	}
	*id = AnalysisID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so they round-trip unchanged.
func (id AnalysisID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// AnalysisResult is the multi-factor score breakdown returned by POST /analyze.
type AnalysisResult struct {
	ID              AnalysisID `json:"id,omitempty"`
	ATSScore        int        `json:"ats_score"`
	Verdict         Verdict    `json:"verdict"`
	KeywordScore    int        `json:"keyword_score"`
	SkillsScore     int        `json:"skills_score"`
	ExperienceScore int        `json:"experience_score"`
	EducationScore  int        `json:"education_score"`
	MatchedKeywords []string   `json:"matched_keywords"`
	MissingKeywords []string   `json:"missing_keywords"`
	MissingSkills   []string   `json:"missing_skills"`
}

// Clone returns a deep copy so callers can't mutate a result held elsewhere.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	out.MatchedKeywords = append([]string(nil), r.MatchedKeywords...)
	out.MissingKeywords = append([]string(nil), r.MissingKeywords...)
	out.MissingSkills = append([]string(nil), r.MissingSkills...)
	return &out
}

// StoredAnalysis is a past analysis as returned by GET /analysis/{id}.
type StoredAnalysis struct {
	AnalysisResult
	Filename       string    `json:"filename"`
	JobDescription string    `json:"job_description,omitempty"`
	CreatedAt      Timestamp `json:"created_at"`
}

// ResumeFile is a resume document selected for upload.
type ResumeFile struct {
	Filename string
	Data     []byte
}

// Empty reports whether no file is selected.
func (f *ResumeFile) Empty() bool {
	return f == nil || f.Filename == "" || len(f.Data) == 0
}

// AnalysisRequest pairs a resume with the job description it is scored against.
// It is built per submission and never persisted.
type AnalysisRequest struct {
	Resume         *ResumeFile
	JobDescription string
}
