package orient

import (
	"fmt"
)

type DirectoryNotFoundError struct {
	ID string
}

func (e DirectoryNotFoundError) Error() string {
	return fmt.Sprintf(`directory "%s" not found`, e.ID)
}

type LocationNotFoundError struct {
	ID string
}

func (e LocationNotFoundError) Error() string {
	return fmt.Sprintf(`location "%s" not found`, e.ID)
}

// ImportError wraps whatever went wrong while reading a Postman export.
// When several documents of an archive are malformed, the wrapped error
// aggregates all causes.
type ImportError struct {
	Err error
}

func (e ImportError) Error() string {
	return fmt.Sprintf("cannot import collection: %s", e.Err)
}

func (e ImportError) Unwrap() error {
	return e.Err
}
