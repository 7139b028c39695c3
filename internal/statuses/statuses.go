package statuses

const (
	StatusActive    = "active"
	StatusImported  = "imported"
	StatusCompleted = "completed"
)
