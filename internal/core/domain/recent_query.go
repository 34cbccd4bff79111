package domain

import "time"

// RecentQuery — одна запись журнала последних поисковых запросов.
type RecentQuery struct {
	Query       string    `json:"query"`
	SearchedAt  time.Time `json:"searched_at"`
	ResultCount int       `json:"result_count"`
}
