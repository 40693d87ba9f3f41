package matching

import (
	"unicode/utf8"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

const maxInputLength = 500

// Input is one matching request.
type Input struct {
	InputString   string
	CheckHomonyms bool
	CheckRank     bool
}

// Validate rejects inputs that cannot be a name string. An empty input is not a
// validation error: it is reported in the Result.
func (i *Input) Validate() error {
	var errs []domain.FieldError

	if utf8.RuneCountInString(i.InputString) > maxInputLength {
		errs = append(errs, domain.FieldError{Field: "input_string", Message: "too long (max 500)"})
	}
	if !utf8.ValidString(i.InputString) {
		errs = append(errs, domain.FieldError{Field: "input_string", Message: "invalid UTF-8"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *Input) flags() flags {
	return flags{checkHomonyms: i.CheckHomonyms, checkRank: i.CheckRank}
}

// flags restrict promotion of a single candidate to a match.
type flags struct {
	checkHomonyms bool
	checkRank     bool
}
