package repository

// TicketFilter narrows ticket listings. Zero values mean "no constraint".
type TicketFilter struct {
	Q          string // free-text match on title/description
	Status     string
	Priority   string
	Type       string
	ProjectID  string
	CreatedBy  string
	AssigneeID string // matches the assignment join table
	Limit      int
	Offset     int
	Sort       string // created_at, updated_at, priority
	Order      string // asc|desc
}
