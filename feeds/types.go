// Package feeds turns an exported post archive into the website feed
package feeds

// Candidate is a raw record after its text has been extracted and repaired,
// before it is assembled into a Post
type Candidate struct {
	Index     int
	Timestamp int64
	Text      string
	HasText   bool
}

// PostFilter decides whether a candidate is included in the feed
type PostFilter interface {
	// Accept returns false and a skip reason for candidates to leave out
	Accept(c Candidate) (bool, string)
}
