package utils

import (
	"encoding/json"
	"net/http"
)

type MW func(http.Handler) http.Handler

func JSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// Middleware wraps final so the first middleware given runs first.
func Middleware(final http.Handler, h ...MW) http.Handler {
	for i := len(h) - 1; i >= 0; i-- {
		final = h[i](final)
	}
	return final
}
