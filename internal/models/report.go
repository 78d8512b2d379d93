package models

import "time"

// Author types on the report feed
const (
	AuthorCitizen = "citizen"
	AuthorAdmin   = "admin"
)

// Report is an incident report or an admin announcement on the public feed.
type Report struct {
	ID         int64
	UserID     int64
	AuthorName string
	AuthorType string
	Title      string
	Content    string
	Location   string
	ImageURL   string
	Alert      bool
	CreatedAt  time.Time
}
