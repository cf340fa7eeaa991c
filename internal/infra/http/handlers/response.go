package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/launch-webhooks/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Erros saem sempre como {"error": "..."}, nada de stack interno pro sender.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		if domainErr.Code == usecase.CodeNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, domainErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
