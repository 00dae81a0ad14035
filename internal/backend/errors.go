package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Three failure classes leave this package:
//
//   - PreconditionError: raised before any network call (missing config,
//     invalid input, missing session id)
//   - APIError: the server answered with a non-2xx status; the server's own
//     message is preserved for the caller to surface
//   - transport errors from net/http, returned as-is

type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

func Precondition(format string, args ...any) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("error %d: %s", e.Status, http.StatusText(e.Status))
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// wireError is the superset of error body shapes the backend produces.
// Validation failures come as field → []message maps.
type wireError struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Code    string              `json:"error_code"`
	Errors  map[string][]string `json:"errors"`
}

// decodeAPIError maps a non-2xx response body to an APIError. Field-level
// validation maps are flattened to the first field's first message so a
// single representative line can be toasted.
func decodeAPIError(status int, body []byte) *APIError {
	ae := &APIError{Status: status}

	var we wireError
	if err := json.Unmarshal(body, &we); err != nil {
		return ae
	}

	ae.Code = we.Code
	switch {
	case we.Message != "":
		ae.Message = we.Message
	case len(we.Errors) > 0:
		ae.Message = firstFieldMessage(we.Errors)
	case we.Error != "":
		ae.Message = we.Error
	}
	return ae
}

func firstFieldMessage(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if len(fields[k]) > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return fields[keys[0]][0]
}
