package entsoe

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the API answers with a blank body.
var ErrEmptyResponse = errors.New("empty response from ENTSO-E API")

// ConnectionError reports a transport failure, timeout, or non-2xx status.
// Status is zero when the request never reached the server.
type ConnectionError struct {
	Status int
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ENTSO-E API returned status %d", e.Status)
	}
	return fmt.Sprintf("ENTSO-E API request failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MalformedDocumentError reports a response body that is not well-formed XML.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed market document: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}
