package domain

// MetricResult holds the derived visibility signals for one (record, entity)
// pair. Written once per record; reprocessing requires an explicit re-run.
type MetricResult struct {
	RecordID        string  `json:"record_id"`
	Entity          string  `json:"entity"`
	VisibilityIndex float64 `json:"visibility_index"` // [0, 1]
	ShareOfAnswers  float64 `json:"share_of_answers"` // [0, 100]
	FirstPosition   int     `json:"first_position"`   // 1-indexed token position, 0 = no mention
	TotalMentions   int     `json:"total_mentions"`
}
