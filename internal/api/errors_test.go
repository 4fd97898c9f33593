package api

import (
	"net/http"
	"testing"
)

func TestNewErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "string message",
			status:  404,
			body:    `{"message":"Category not found","error":"Not Found"}`,
			wantMsg: "Category not found",
		},
		{
			name:    "array message joined",
			status:  400,
			body:    `{"message":["title must not be empty","type must be valid"],"error":"Bad Request"}`,
			wantMsg: "title must not be empty; type must be valid",
		},
		{
			name:    "error field fallback",
			status:  409,
			body:    `{"error":"Conflict"}`,
			wantMsg: "Conflict",
		},
		{
			name:    "non-json body falls back to status text",
			status:  502,
			body:    `<html>bad gateway</html>`,
			wantMsg: "Bad Gateway",
		},
		{
			name:    "empty body falls back to status text",
			status:  500,
			body:    ``,
			wantMsg: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newError(tt.status, "/test", []byte(tt.body))
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Status != tt.status {
				t.Errorf("Status = %d, want %d", err.Status, tt.status)
			}
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	notFound := newError(http.StatusNotFound, "/x", nil)
	if !IsNotFound(notFound) {
		t.Error("IsNotFound() = false for a 404")
	}
	if IsServer(notFound) {
		t.Error("IsServer() = true for a 404")
	}

	server := newError(http.StatusBadGateway, "/x", nil)
	if !IsServer(server) {
		t.Error("IsServer() = false for a 502")
	}

	validation := newError(http.StatusBadRequest, "/x", nil)
	if !IsValidation(validation) {
		t.Error("IsValidation() = false for a 400")
	}
}
