// Package git provides the version-control facts used for version
// resolution: the describe result parser, commit facts, the Service
// collaborator interface and its go-git implementation.
package git

import (
	"strings"
	"time"
)

// AbbrevLength is the length of abbreviated commit ids.
const AbbrevLength = 7

// Commit holds the facts about a single commit.
type Commit struct {
	Sha         string
	Message     string
	When        time.Time
	AuthorName  string
	AuthorEmail string
}

// ShortSha returns the first AbbrevLength characters of the SHA.
func (c Commit) ShortSha() string {
	return Abbreviate(c.Sha)
}

// ShortMessage returns the first line of the commit message.
func (c Commit) ShortMessage() string {
	msg := strings.TrimLeft(c.Message, "\n")
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx]
	}
	return strings.TrimSpace(msg)
}

// Abbreviate shortens a SHA to AbbrevLength characters.
func Abbreviate(sha string) string {
	if len(sha) > AbbrevLength {
		return sha[:AbbrevLength]
	}
	return sha
}

// Tag is a tag name with the commit it points at, annotated tags peeled.
type Tag struct {
	Name      string
	CommitSha string
}
