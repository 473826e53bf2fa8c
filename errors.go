package pokedata

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned by Generate when not a single record could be
// produced for the request (every remote fetch failed, or a filter removed
// everything). Partial results are not errors; an empty result is.
var ErrNoRecords = errors.New("pokedata: no records could be generated")

// UnsupportedCategoryError reports a category that passed capability
// validation but has no normalizer. This is the one hard failure in the
// dispatch path; callers must treat it as final for that request.
type UnsupportedCategoryError struct {
	Category string
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("pokedata: unsupported data category %q", e.Category)
}
