package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DetailResponse is the error body: {"detail": "..."}.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the body of a successful mutation: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response failed", slog.Any("err", err))
	}
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, DetailResponse{Detail: detail})
}
