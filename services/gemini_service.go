// services/gemini_service.go - Gemini cultural-content generation
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

	// LLM calls can be slow; bound them but leave generous headroom.
	geminiTimeout = 45 * time.Second

	// 2-3 sentences with cultural context for scanned items, shorter
	// blurbs for place listings.
	maxExplanationChars = 450
	maxPlaceChars       = 220
)

var explanationLangNames = map[string]string{
	"es": "español",
	"en": "inglés",
	"qu": "quechua cusqueño",
}

// GeminiService generates short cultural explanations. Every method
// degrades to an error the caller is expected to absorb; nothing here is
// fatal to a request.
type GeminiService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:   apiKey,
		endpoint: geminiEndpoint,
		client:   &http.Client{Timeout: geminiTimeout},
	}
}

// PlaceDescription returns a 1-2 sentence Spanish tourist description of
// a place near Cusco.
func (g *GeminiService) PlaceDescription(ctx context.Context, placeName string) (string, error) {
	if placeName == "" {
		placeName = "este lugar"
	}
	prompt := fmt.Sprintf(
		"Eres un guía turístico andino. Describe en términos atractivos y respetuosos el lugar %q (Cusco, Perú). "+
			"Responde en español, en 1-2 oraciones, y usa un máximo de %d caracteres. "+
			"Incluye contexto cultural relevante si aplica, pero evita detalles técnicos o largos.",
		placeName, maxPlaceChars,
	)
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return sanitizeAndLimit(out, maxPlaceChars), nil
}

// CulturalExplanation returns a short explanation of a detected object or
// text in the requested language, grounded in Andean cultural context.
func (g *GeminiService) CulturalExplanation(ctx context.Context, subject string, labels []string, lang string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("empty subject")
	}
	langName := explanationLangNames[normalizeLang(lang)]
	if langName == "" {
		langName = "español"
	}

	var contextHint string
	if len(labels) > 0 {
		contextHint = fmt.Sprintf(" Contexto detectado en la imagen: %s.", strings.Join(labels, ", "))
	}
	prompt := fmt.Sprintf(
		"Eres un experto en cultura andina y peruana. Explica brevemente el significado cultural de %q para un turista.%s "+
			"Responde en %s, en 2-3 oraciones, con un máximo de %d caracteres.",
		subject, contextHint, langName, maxExplanationChars,
	)
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return sanitizeAndLimit(out, maxExplanationChars), nil
}

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
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// sanitizeAndLimit collapses blank lines and trims the text to maxChars,
// appending an ellipsis only when something was cut.
func sanitizeAndLimit(text string, maxChars int) string {
	s := strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	s = strings.Join(kept, "\n")
	if len(s) <= maxChars {
		return s
	}
	cut := maxChars - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut]) + "..."
}
