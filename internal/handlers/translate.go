package handlers

import (
	"encoding/json"
	"net/http"

	"truckledger-backend/internal/services"
)

type TranslateRequest struct {
	Text string `json:"text"`
}

type TranslateResponse struct {
	Text       string `json:"text"`
	Translated string `json:"translated"`
}

// Translate bridges Telugu/English form input. When the translation service
// is not configured the text comes back unchanged, so the client never has
// to special-case a missing API key.
func Translate(translator *services.TranslateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TranslateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, "Text is required", http.StatusBadRequest)
			return
		}

		translated := req.Text
		if translator != nil {
			translated = translator.Translate(req.Text)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TranslateResponse{
			Text:       req.Text,
			Translated: translated,
		})
	}
}
