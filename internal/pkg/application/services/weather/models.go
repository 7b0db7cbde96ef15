package weathersvc

import "fmt"

type Reason int

const (
	TransportFailure Reason = iota
	StatusFailure
	DecodeFailure
)

func (r Reason) String() string {
	switch r {
	case TransportFailure:
		return "transport failure"
	case StatusFailure:
		return "status failure"
	case DecodeFailure:
		return "decode failure"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// FetchError is returned for every way a current weather request can fail before
// a response body has been decoded.
type FetchError struct {
	Reason     Reason
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
