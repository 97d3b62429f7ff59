package feed

import "fmt"

// UnavailableError indicates that an upstream feed could not be fetched at all
// (network failure, timeout or a non-2xx response)
type UnavailableError struct {
	Source   string
	Wrapping error
}

func (err *UnavailableError) Error() string {
	return fmt.Sprintf("feed source '%s' is unavailable: %s", err.Source, err.Wrapping)
}

func (err *UnavailableError) Unwrap() error {
	return err.Wrapping
}

// MalformedError indicates that an upstream feed was fetched but is structurally
// undecodable. Individual undecodable rows are not an error; this is reserved for
// payloads the decoder cannot make sense of at all (e.g. a broken gzip stream or
// a feed without a single decodable row).
type MalformedError struct {
	Source   string
	Wrapping error
}

func (err *MalformedError) Error() string {
	return fmt.Sprintf("feed source '%s' is malformed: %s", err.Source, err.Wrapping)
}

func (err *MalformedError) Unwrap() error {
	return err.Wrapping
}
