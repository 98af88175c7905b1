package entity

import "time"

// AccessLog is a single successful redirect of a shortened URL.
type AccessLog struct {
	ID        int64
	URLID     int64
	Timestamp time.Time
	IPAddress string
}

// Analytics aggregates the access history of a shortened URL.
type Analytics struct {
	OriginalURL string
	URLStats
	AccessLogs []AccessLog // ordered by Timestamp ascending
}
