package dto

// StatsSummary backs the dashboard charts: live ticket counts grouped by
// each enum field.
type StatsSummary struct {
	ByStatus   map[string]int `json:"byStatus"`
	ByPriority map[string]int `json:"byPriority"`
	ByType     map[string]int `json:"byType"`
}
