// Package httpx holds the JSON request/response helpers shared by all
// API handlers: body decoding with a size cap, success rendering, and
// the single-error response shape backed by the apperr taxonomy.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; every endpoint in this API carries
// a small JSON document.
const maxBodyBytes = 1 << 20

// Decode reads a JSON request body into v. Returns an InvalidArgument
// error for malformed or empty bodies.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.E(apperr.InvalidArgument, "request body is required")
		}
		return apperr.Errorf(apperr.InvalidArgument, "invalid request body: %v", err)
	}
	return nil
}

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// Error writes err as the single-error JSON response, one error per
// response with a fixed status per kind. Internal errors are logged
// with their cause and reported to the caller with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error, log *zap.Logger) {
	kind := apperr.KindOf(err)
	msg := err.Error()

	if kind == apperr.Internal {
		if log != nil {
			log.Error("request failed",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.Error(err))
		}
		msg = "internal server error"
	}

	Respond(w, apperr.HTTPStatus(kind), errorBody{Error: errorDetail{Kind: kind, Message: msg}})
}
