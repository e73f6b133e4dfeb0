// handlers/translate.go - Translation endpoints
package handlers

import (
	"os"
	"strings"

	"ulenguage/cache"
	"ulenguage/database"
	"ulenguage/services"

	"github.com/gofiber/fiber/v2"
)

var translationService *services.TranslationService

// InitTranslationHandlers builds the hybrid resolver: curated dictionary
// first, Glosbe scraping second, machine translation third.
func InitTranslationHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitTranslationHandlers")
	}
	translationService = services.NewTranslationService(
		database.NewTermStore(db),
		services.NewGlosbeScraper(),
		services.NewGoogleTranslator(os.Getenv("GOOGLE_TRANSLATE_API_KEY")),
		cache.NewTranslationCache(),
	)
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// TranslateText translates through the machine backend only.
// POST /api/translate
func TranslateText(c *fiber.Ctx) error {
	var req TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" || req.TargetLang == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "text and targetLang are required"})
	}

	translated := translationService.TranslateDirect(c.Context(), req.Text, req.TargetLang)
	return c.JSON(fiber.Map{
		"success":     true,
		"original":    req.Text,
		"translated":  translated,
		"target_lang": req.TargetLang,
	})
}

// ResolveTranslation runs the full hybrid chain. It always answers 200
// with some text; exhausted sources yield a localized fallback message.
// POST /api/translate/hybrid
func ResolveTranslation(c *fiber.Ctx) error {
	var req TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" || req.TargetLang == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "text and targetLang are required"})
	}

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "es"
	}

	translated := translationService.Resolve(c.Context(), req.Text, sourceLang, req.TargetLang)
	return c.JSON(fiber.Map{
		"success":     true,
		"original":    req.Text,
		"translated":  translated,
		"source_lang": sourceLang,
		"target_lang": req.TargetLang,
	})
}
