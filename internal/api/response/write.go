package response

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response. The body is encoded before any
// header is written so an encoding failure still yields a clean 500.
func JSON(w http.ResponseWriter, status int, data any) {
	var body bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&body).Encode(data); err != nil {
			status = http.StatusInternalServerError
			body.Reset()
			body.WriteString(`{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body.Bytes())
}

// NoContent writes a 204 after a delete
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
