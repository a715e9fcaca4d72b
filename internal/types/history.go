package types

import "math"

// HistoryEntry is one row of GET /history.
type HistoryEntry struct {
	ID        AnalysisID `json:"id,omitempty"`
	Filename  string     `json:"filename"`
	CreatedAt Timestamp  `json:"created_at"`
	ATSScore  int        `json:"ats_score"`
	Verdict   Verdict    `json:"verdict"`
}

// HistoryStats are aggregates derived from a history entry set.
type HistoryStats struct {
	TotalCount       int `json:"total_count"`
	AverageScore     int `json:"average_score"`
	ShortlistedCount int `json:"shortlisted_count"`
}

// ComputeStats derives HistoryStats from entries.
// AverageScore is rounded half-up to the nearest integer and is 0 for an empty set.
// ShortlistedCount follows the verdict, never the score.
func ComputeStats(entries []HistoryEntry) HistoryStats {
	stats := HistoryStats{TotalCount: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	sum := 0
	for _, e := range entries {
		sum += e.ATSScore
		if e.Verdict.IsShortlisted() {
			stats.ShortlistedCount++
		}
	}
	stats.AverageScore = int(math.Floor(float64(sum)/float64(len(entries)) + 0.5))
	return stats
}
