package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/doubles-roundrobin/internal/api/apierr"
	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// maxBodyBytes caps request bodies; the largest is a division or team
const maxBodyBytes = 64 << 10

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decodeBody reads a JSON request body into dst. On failure it writes a 400
// and reports false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decode(w, r, dst, false)
}

// decodeOptionalBody is decodeBody but accepts an empty body
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decode(w, r, dst, true)
}

func decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteError(w, apierr.NewInvalidRequestError("Request body too large"))
	} else {
		WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
	}
	return false
}

// codeFrom reads the tournament code path variable. Codes are case-insensitive.
func codeFrom(r *http.Request) model.TournamentCode {
	return model.TournamentCode(strings.ToUpper(mux.Vars(r)["code"]))
}
