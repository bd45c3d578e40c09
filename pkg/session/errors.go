package session

import "fmt"

// PermissionError reports that the capture device could not be acquired.
// Start returns it and leaves the session idle; it is not retried.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("capture device unavailable: %v", e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// EncodingError reports that a message could not be converted to
// transmittable bytes. Send returns it and the session state is unchanged.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("message not encodable: %s", e.Reason)
}
