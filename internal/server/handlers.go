package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/skill-gap-navigator/internal/server/middleware"
)

// maxBodyBytes caps request bodies; resume text is the largest payload.
const maxBodyBytes = 1 << 20

// validatable is implemented by the request DTOs in internal/types.
type validatable interface {
	Validate() error
}

// decodeRequest decodes the JSON body into dst and validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst validatable) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Message: "request body is empty"}
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	if err := dst.Validate(); err != nil {
		return validationFailure(err)
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}

// userID returns the authenticated caller.
func userID(r *http.Request) (uuid.UUID, error) {
	id, err := middleware.GetUserID(r)
	if err != nil {
		return uuid.Nil, &ErrUnauthorized{}
	}
	return id, nil
}

// queryBool reads a boolean query parameter; absent means false.
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ErrValidation{Field: name, Message: "must be true or false"}
	}
	return v, nil
}
