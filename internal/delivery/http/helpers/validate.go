package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// maxBodyBytes bounds request bodies; selection updates are tiny.
const maxBodyBytes = 1 << 16

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest (unknown fields
// rejected) and runs Validate when dest implements Validator. On failure it
// writes a 400 JSON error and returns false; callers return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
