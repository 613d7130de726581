package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Every JSON response carries the same envelope: success plus either data or
// an error message.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (a *API) writeSuccess(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	a.writeJSON(ctx, w, statusCode, successResponse{Success: true, Data: data})
}

func (a *API) writeError(ctx context.Context, w http.ResponseWriter, statusCode int, message string) {
	a.writeJSON(ctx, w, statusCode, errorResponse{Success: false, Error: message})
}

func (a *API) writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	jsonBody, err := json.Marshal(v)
	if err != nil {
		a.getLoggerOrBaseLogger(ctx).Error("Failed to marshal response body", "error", err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"Internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBody)
}
