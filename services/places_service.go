// services/places_service.go - Google Places nearby search around Cusco
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ulenguage/utils"

	"go.uber.org/zap"
)

const (
	placesEndpoint = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	placesPhotoURL = "https://maps.googleapis.com/maps/api/place/photo"

	// Cusco city center; the explorer only covers the Cusco region.
	cuscoLat      = -13.53195
	cuscoLng      = -71.967463
	cuscoRadiusM  = 30000
	defaultType   = "tourist_attraction"
	placesTimeout = 10 * time.Second
)

// descriptionUnavailable is the static degraded output when Gemini or the
// resolver cannot produce a description.
var descriptionUnavailable = map[string]string{
	"es": "Descripción no disponible por el momento.",
	"en": "Description not available at the moment.",
	"qu": "Manaraq kashanmi willakuy.",
}

// Place is the explorer listing entry served to the client.
type Place struct {
	Name         string            `json:"name"`
	Image        string            `json:"image,omitempty"`
	Location     PlaceLocation     `json:"location"`
	Category     string            `json:"category"`
	Rating       float64           `json:"rating"`
	ReviewsCount int               `json:"reviewsCount"`
	Description  map[string]string `json:"description"`
}

type PlaceLocation struct {
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	GoogleMapsURL string  `json:"googleMapsUrl"`
}

// PlacesService lists tourist attractions around Cusco and enriches each
// with a generated description in es/en/qu. Description generation is
// best-effort: failures degrade to a static placeholder and never fail
// the listing.
type PlacesService struct {
	apiKey     string
	endpoint   string
	client     *http.Client
	gemini     *GeminiService
	translator *TranslationService
}

func NewPlacesService(apiKey string, gemini *GeminiService, translator *TranslationService) *PlacesService {
	return &PlacesService{
		apiKey:     apiKey,
		endpoint:   placesEndpoint,
		client:     &http.Client{Timeout: placesTimeout},
		gemini:     gemini,
		translator: translator,
	}
}

type placesResponse struct {
	Results []struct {
		Name   string `json:"name"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types            []string `json:"types"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// GetPlaces runs a Places nearby search limited to the Cusco area. Only
// the first results page is used (API cap of 20 per page).
func (s *PlacesService) GetPlaces(ctx context.Context, placeType string) ([]Place, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("google places api key not configured")
	}
	if placeType == "" {
		placeType = defaultType
	}

	query := url.Values{}
	query.Set("location", fmt.Sprintf("%v,%v", cuscoLat, cuscoLng))
	query.Set("radius", fmt.Sprintf("%d", cuscoRadiusM))
	query.Set("type", placeType)
	query.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}
	if parsed.Status != "OK" && parsed.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places api status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	places := make([]Place, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		place := Place{
			Name: r.Name,
			Location: PlaceLocation{
				Lat:           r.Geometry.Location.Lat,
				Lng:           r.Geometry.Location.Lng,
				GoogleMapsURL: fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", r.Geometry.Location.Lat, r.Geometry.Location.Lng),
			},
			Rating:       r.Rating,
			ReviewsCount: r.UserRatingsTotal,
			Description:  s.describe(ctx, r.Name),
		}
		if len(r.Types) > 0 {
			place.Category = r.Types[0]
		}
		if len(r.Photos) > 0 {
			place.Image = fmt.Sprintf("%s?maxwidth=400&photoreference=%s&key=%s", placesPhotoURL, r.Photos[0].PhotoReference, s.apiKey)
		}
		places = append(places, place)
	}
	return places, nil
}

// describe produces a trilingual description for one place. Spanish comes
// from Gemini; the other languages go through the hybrid resolver.
func (s *PlacesService) describe(ctx context.Context, name string) map[string]string {
	if s.gemini == nil {
		return descriptionUnavailable
	}

	descES, err := s.gemini.PlaceDescription(ctx, name)
	if err != nil || descES == "" {
		utils.Logger.Warn("place_description_failed",
			zap.String("place", name),
			zap.Error(err),
		)
		return descriptionUnavailable
	}

	desc := map[string]string{"es": descES}
	if s.translator != nil {
		desc["en"] = s.translator.Resolve(ctx, descES, "es", "en")
		desc["qu"] = s.translator.Resolve(ctx, descES, "es", "qu")
	} else {
		desc["en"] = descriptionUnavailable["en"]
		desc["qu"] = descriptionUnavailable["qu"]
	}
	return desc
}
