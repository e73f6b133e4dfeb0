// services/vision_service.go - Google Vision image annotation client
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	visionEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	visionTimeout  = 30 * time.Second
	maxVisionItems = 10
)

// VisionObject is an object localized in the image.
type VisionObject struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// VisionResult is the normalized annotation output consumed by the
// culture pipeline.
type VisionResult struct {
	Text    string         `json:"text"`
	Lang    string         `json:"lang"`
	Labels  []string       `json:"labels"`
	Objects []VisionObject `json:"objects"`
}

// VisionAnalyzer abstracts the image annotation backend so the culture
// handler can be tested without network access.
type VisionAnalyzer interface {
	Annotate(ctx context.Context, imagePath string) (*VisionResult, error)
}

// VisionService implements VisionAnalyzer over the Google Vision REST
// API (text, label and object detection in one request).
type VisionService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewVisionService(apiKey string) *VisionService {
	return &VisionService{
		apiKey:   apiKey,
		endpoint: visionEndpoint,
		client:   &http.Client{Timeout: visionTimeout},
	}
}

type visionFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionSingleRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionAnnotateRequest struct {
	Requests []visionSingleRequest `json:"requests"`
}

type visionAnnotateResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text  string `json:"text"`
			Pages []struct {
				Property struct {
					DetectedLanguages []struct {
						LanguageCode string  `json:"languageCode"`
						Confidence   float64 `json:"confidence"`
					} `json:"detectedLanguages"`
				} `json:"property"`
			} `json:"pages"`
		} `json:"fullTextAnnotation"`
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
		LocalizedObjectAnnotations []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"localizedObjectAnnotations"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Annotate uploads the image and returns detected text, labels and
// objects.
func (s *VisionService) Annotate(ctx context.Context, imagePath string) (*VisionResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("google vision api key not configured")
	}

	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	reqBody := visionAnnotateRequest{
		Requests: []visionSingleRequest{{
			Image: visionImage{Content: base64.StdEncoding.EncodeToString(raw)},
			Features: []visionFeature{
				{Type: "TEXT_DETECTION"},
				{Type: "LABEL_DETECTION", MaxResults: maxVisionItems},
				{Type: "OBJECT_LOCALIZATION", MaxResults: maxVisionItems},
			},
		}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed visionAnnotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision api status %d: %s", resp.StatusCode, parsed.Error.Message)
	}
	if len(parsed.Responses) == 0 {
		return nil, fmt.Errorf("vision api returned no responses")
	}
	r := parsed.Responses[0]
	if r.Error.Message != "" {
		return nil, fmt.Errorf("vision annotation error: %s", r.Error.Message)
	}

	result := &VisionResult{
		Text: strings.TrimSpace(r.FullTextAnnotation.Text),
		Lang: "und",
	}

	// Pick the highest-confidence detected language of the first page.
	best := 0.0
	for _, page := range r.FullTextAnnotation.Pages {
		for _, dl := range page.Property.DetectedLanguages {
			if dl.Confidence > best && dl.LanguageCode != "" {
				best = dl.Confidence
				result.Lang = dl.LanguageCode
			}
		}
	}

	for _, label := range r.LabelAnnotations {
		result.Labels = append(result.Labels, label.Description)
	}
	for _, obj := range r.LocalizedObjectAnnotations {
		result.Objects = append(result.Objects, VisionObject{Name: obj.Name, Score: obj.Score})
	}
	return result, nil
}
