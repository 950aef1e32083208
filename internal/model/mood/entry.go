package mood

import "time"

// Entry is a stored mood check-in: a free-text mood label, optional journal text and a timestamp.
// The JSON shape uses the Mongo-style "_id" key clients read.
type Entry struct {
	ID        string    `json:"_id"`
	Mood      string    `json:"mood"`
	Journal   string    `json:"journal,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Input carries the client-supplied fields of a new entry. A zero Timestamp means "now".
type Input struct {
	Mood      string
	Journal   string
	Timestamp time.Time
}
