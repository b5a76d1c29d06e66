package feeds

import "unicode/utf8"

// DefaultMinTextLength is the shortest text, in characters, worth showing on the website
const DefaultMinTextLength = 50

// MinTextLengthFilter drops candidates without text or with too little of it.
// Length is counted in characters, not bytes.
type MinTextLengthFilter struct {
	MinLength int
}

func (f *MinTextLengthFilter) Accept(c Candidate) (bool, string) {
	if !c.HasText || c.Text == "" {
		return false, SkipNoText
	}
	if utf8.RuneCountInString(c.Text) < f.MinLength {
		return false, SkipTooShort
	}
	return true, ""
}

var _ PostFilter = (*MinTextLengthFilter)(nil)
