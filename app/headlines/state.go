package headlines

import "github.com/Semior001/headlines/app/news"

// State is the projection of a headline fetch.
// It is always one of Loading, Success or Error.
type State interface {
	state()
}

// Loading means the fetch is in progress.
type Loading struct{}

// Success holds the fetched headlines, newest first. May be empty.
type Success struct {
	Articles []news.Article
}

// Error holds a human-readable description of the fetch failure.
type Error struct {
	Message string
}

func (Loading) state() {}
func (Success) state() {}
func (Error) state()   {}
