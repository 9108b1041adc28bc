package api

import "fmt"

// TransportError covers network failures and non-2xx responses. The
// status code is 0 when the request never reached the server.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Rejected reports whether the server answered with a 4xx status,
// i.e. the request itself was refused rather than the transport failing.
func (e *TransportError) Rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// DecodeError covers response bodies that could not be parsed into the
// expected shape. Handled like a TransportError by callers, but kept
// distinguishable for logging.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
