package resp

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse пишет статус и тело в JSON
func WriteJSONResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError пишет ошибку в JSON
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSONResponse(w, status, ErrorResponse{Error: msg})
}
