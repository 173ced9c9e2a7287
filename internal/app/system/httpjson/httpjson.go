package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the uniform response shape returned by every endpoint:
//
//	{ "status": "success"|"error", "message": "...", "data": {...}|null }
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// WriteSuccess writes a success envelope with the given status code.
func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	write(w, code, Envelope{Status: "success", Message: message, Data: data})
}

// WriteError writes an error envelope with the given status code.
// Data is always null on errors.
func WriteError(w http.ResponseWriter, code int, message string) {
	write(w, code, Envelope{Status: "error", Message: message, Data: nil})
}

func write(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}

// maxBodyBytes caps JSON request bodies. Requests carrying images go
// through multipart handling instead and are not subject to this limit.
const maxBodyBytes = 1 << 20

// DecodeBody decodes a JSON request body into v. It rejects unknown
// fields so typos in client payloads surface as 400s rather than
// silently dropped data.
func DecodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	// A second decode succeeding means trailing garbage after the object.
	if err := dec.Decode(&struct{}{}); err == nil {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
