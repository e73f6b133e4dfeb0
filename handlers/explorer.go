// handlers/explorer.go - Tourist attraction explorer
package handlers

import (
	"os"

	"ulenguage/services"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var placesService *services.PlacesService

// InitExplorerHandlers wires the places service. It reuses the gemini
// client and translation resolver, so InitCultureHandlers and
// InitTranslationHandlers must run first.
func InitExplorerHandlers() {
	if translationService == nil {
		panic("Translation service not initialized before InitExplorerHandlers")
	}
	placesService = services.NewPlacesService(
		os.Getenv("GOOGLE_PLACES_API_KEY"),
		geminiService,
		translationService,
	)
}

// GetPlaces lists attractions around Cusco with trilingual descriptions.
// GET /api/explorer/places?type=tourist_attraction
func GetPlaces(c *fiber.Ctx) error {
	placeType := c.Query("type", "tourist_attraction")

	places, err := placesService.GetPlaces(c.Context(), placeType)
	if err != nil {
		utils.Logger.Error("places lookup failed", zap.Error(err), zap.String("type", placeType))
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Could not load places"})
	}

	return c.JSON(fiber.Map{"success": true, "count": len(places), "places": places})
}
