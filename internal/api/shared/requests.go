package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBody caps how much of a request body DecodeJSON will read.
// Every write endpoint in the API carries a small JSON document, so
// anything past a megabyte is a client bug.
const maxRequestBody = 1 << 20

// Validate is the shared validator instance. Handlers use it directly for
// request struct validation so tag parsing caches are reused across requests.
var Validate = validator.New()

// DecodeJSON decodes the request body into v. Unknown fields are rejected
// so that a misspelled key fails loudly instead of silently dropping the
// value, and reads are capped at maxRequestBody bytes.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
