// Package utils
package utils

import (
	"encoding/json"
	"net/http"
)

// Body is the shape of every JSON response the service writes.
type Body = map[string]any

func ReplyJSON(w http.ResponseWriter, status int, body Body) error {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
