package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// TranslateService bridges Telugu/English form input through the Gemini
// generateContent REST API. Translation is best-effort: on any failure the
// caller gets the original text back, never an error the UI has to handle.
type TranslateService struct {
	apiKey string
	client *http.Client
}

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewTranslateService creates a new translation service
func NewTranslateService() (*TranslateService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return &TranslateService{
		apiKey: apiKey,
		client: &http.Client{},
	}, nil
}

// Translate detects the language of text and translates English to Telugu
// or Telugu to English. Any failure returns the input unchanged.
func (s *TranslateService) Translate(text string) string {
	prompt := "Translate the following text. If it is in English, translate it to Telugu. " +
		"If it is in Telugu, translate it to English. Only return the translated text:\n\n" + text

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return text
	}

	req, err := http.NewRequest(http.MethodPost, geminiEndpoint, bytes.NewReader(body))
	if err != nil {
		return text
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return text
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return text
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return text
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return text
	}
	translated := result.Candidates[0].Content.Parts[0].Text
	if translated == "" {
		return text
	}
	return translated
}
