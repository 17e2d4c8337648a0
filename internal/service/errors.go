package service

import "fmt"

// ValidationError rejects a batch before any write happens. File is
// empty when the batch itself is at fault (e.g. no files submitted).
type ValidationError struct {
	File   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.File == "" {
		return e.Reason
	}
	return fmt.Sprintf("file %q: %s", e.File, e.Reason)
}

// TooLargeError rejects a single file whose declared size exceeds the
// policy maximum. Mapped to 413 rather than a generic 400.
type TooLargeError struct {
	File string
	Size int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file %q: %d bytes exceeds the maximum allowed size", e.File, e.Size)
}
