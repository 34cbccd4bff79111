package constants

// Виды событий телеметрии.
const (
	EventKindSearchPerformed = "search_performed"
	EventKindDetailViewed    = "detail_viewed"
)
