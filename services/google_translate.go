// services/google_translate.go - Google Translate v2 REST client
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"
)

const translateEndpoint = "https://translation.googleapis.com/language/translate/v2"

// GoogleTranslator implements MachineTranslator over the Translate v2
// REST API using an API key. Source language is omitted; Google detects
// it.
type GoogleTranslator struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGoogleTranslator(apiKey string) *GoogleTranslator {
	return &GoogleTranslator{
		apiKey:   apiKey,
		endpoint: translateEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("google translate api key not configured")
	}

	// Google expects "qu" for Quechua, not the ISO 639-3 variants.
	if isQuechua(target) {
		target = "qu"
	}

	body, err := json.Marshal(translateRequest{Q: text, Target: target, Format: "text"})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"?key="+t.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate api status %d: %s", resp.StatusCode, parsed.Error.Message)
	}
	if len(parsed.Data.Translations) == 0 {
		return "", fmt.Errorf("translate api returned no translations")
	}

	// v2 escapes entities even in text mode.
	return html.UnescapeString(parsed.Data.Translations[0].TranslatedText), nil
}
