// Package httpjson holds the JSON request/response helpers shared by the API
// handlers: decoding bodies, writing documents, and the two error envelopes
// (field-level validation errors and single-message failures).
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// FieldError is one entry of a validation error envelope.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// Write serializes v with the given status. Encoding failures are swallowed;
// by then the status line is already on the wire.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Msg writes {"msg": …} with the given status. Used for not-found,
// unauthorized, and generic server failures.
func Msg(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"msg": msg})
}

// ValidationErrors writes {"errors":[{"msg":…,"param":…},…]} with status 400.
func ValidationErrors(w http.ResponseWriter, errs ...FieldError) {
	Write(w, http.StatusBadRequest, map[string][]FieldError{"errors": errs})
}

// ServerError writes the generic 500 body. Internals are logged by the
// caller, never leaked here.
func ServerError(w http.ResponseWriter) {
	Msg(w, http.StatusInternalServerError, "Server error")
}

// maxBodyBytes caps request bodies; profile and post payloads are small.
const maxBodyBytes = 1 << 20

// Decode reads a JSON body into v. Unknown fields are ignored (clients send
// UI state we don't care about); malformed JSON is an error.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
