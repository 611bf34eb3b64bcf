package models

import (
	"strings"
	"time"
)

type BlogPost struct {
	ID              string
	AuthorFirstName string
	AuthorLastName  string
	Title           string
	Content         string
	Created         time.Time
}

// AuthorName returns the snapshot author name as "firstName lastName",
// trimmed.
func (p *BlogPost) AuthorName() string {
	return strings.TrimSpace(p.AuthorFirstName + " " + p.AuthorLastName)
}
