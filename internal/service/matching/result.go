package matching

import "github.com/heartmarshall/namematch-backend/internal/domain"

// Candidate is an entry that could not be promoted to a match. Distance is the
// edit distance for approximate hits and 0 otherwise.
type Candidate struct {
	Entry    *domain.NameEntry
	Distance int
}

// Result is the outcome of one matching request. Match and Candidates are
// never both populated.
type Result struct {
	InputString  string
	SearchString string
	Match        *domain.NameEntry
	Candidates   []Candidate
	Method       domain.MatchMethod
	Error        bool
	ErrorMessage string
	Narrative    []string
}

// IsAmbiguous reports whether the request resolved to several candidates.
func (r *Result) IsAmbiguous() bool {
	return r.Match == nil && len(r.Candidates) > 1
}
