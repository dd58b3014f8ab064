// response/success.go
/* Responsible for handling successful API responses. BillForward answers every call with JSON; the
decoded value is handed back untyped so resource models can map it onto their own structures. */
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HandleAPISuccessResponse decodes a 2xx response body. An empty body yields nil.
func HandleAPISuccessResponse(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return decoded, nil
}

// Results returns the "results" array of a decoded payload. Missing, null or non-array results
// yield an empty slice.
func Results(payload any) []any {
	envelope, ok := payload.(map[string]any)
	if !ok {
		return []any{}
	}

	results, ok := envelope["results"].([]any)
	if !ok {
		return []any{}
	}

	return results
}

// FirstResult returns the first element of the payload's results and whether one exists.
func FirstResult(payload any) (any, bool) {
	results := Results(payload)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// PrettyJSON renders v indented for diagnostic logs. Values that cannot be encoded are
// rendered with %v.
func PrettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
