// handlers/culture.go - Image recognition and cultural explanations
package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"ulenguage/services"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	geminiService *services.GeminiService
	visionService *services.VisionService
)

// InitCultureHandlers wires the Vision and Gemini clients.
func InitCultureHandlers() {
	geminiService = services.NewGeminiService(os.Getenv("GEMINI_API_KEY"))
	visionService = services.NewVisionService(os.Getenv("GOOGLE_VISION_API_KEY"))
}

// AnalyzeImage accepts an uploaded photo, identifies what it shows and
// returns a short cultural explanation in Spanish, English and Quechua.
// POST /api/culture/scan (multipart field "image")
func AnalyzeImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "image file is required"})
	}
	if file.Size > 10*1024*1024 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "image must be under 10MB"})
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("culture_%s%s", uuid.New().String(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, tmpPath); err != nil {
		utils.Logger.Error("upload save failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not store upload"})
	}
	defer os.Remove(tmpPath)

	result, err := visionService.Annotate(c.Context(), tmpPath)
	if err != nil {
		utils.Logger.Error("vision annotate failed", zap.Error(err))
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Image analysis failed"})
	}

	subject := result.Text
	if subject == "" && len(result.Labels) > 0 {
		subject = result.Labels[0]
	}
	if subject == "" {
		return c.Status(422).JSON(fiber.Map{"success": false, "error": "Could not identify anything in the image"})
	}

	explanationES, err := geminiService.CulturalExplanation(c.Context(), subject, result.Labels, "es")
	if err != nil {
		utils.Logger.Error("explanation failed", zap.Error(err), zap.String("subject", subject))
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Could not generate explanation"})
	}

	// Translations degrade gracefully: the resolver always returns text.
	explanationEN := translationService.Resolve(c.Context(), explanationES, "es", "en")
	explanationQU := translationService.Resolve(c.Context(), explanationES, "es", "qu")

	return c.JSON(fiber.Map{
		"success": true,
		"subject": subject,
		"detected": fiber.Map{
			"text":    result.Text,
			"lang":    result.Lang,
			"labels":  result.Labels,
			"objects": result.Objects,
		},
		"explanation": fiber.Map{
			"es": explanationES,
			"en": explanationEN,
			"qu": explanationQU,
		},
	})
}
