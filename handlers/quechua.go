// handlers/quechua.go - Curated dictionary management
package handlers

import (
	"errors"
	"strings"

	"ulenguage/database"
	"ulenguage/models"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddTermRequest struct {
	Spanish         string   `json:"spanish"`
	QuechuaCusqueno string   `json:"quechua_cusqueno"`
	Context         string   `json:"context"`
	Category        string   `json:"category"`
	Examples        []string `json:"examples"`
}

// AddQuechuaTerm inserts a verified dictionary entry.
// POST /api/quechua/add
func AddQuechuaTerm(c *fiber.Ctx) error {
	var req AddTermRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Spanish) == "" || strings.TrimSpace(req.QuechuaCusqueno) == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "spanish and quechua_cusqueno are required"})
	}

	term := models.QuechuaTerm{
		Spanish:         req.Spanish,
		QuechuaCusqueno: strings.TrimSpace(req.QuechuaCusqueno),
		Context:         req.Context,
		Category:        req.Category,
		Examples:        req.Examples,
	}

	db := database.GetDB()
	if err := db.Create(&term).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "Term already exists"})
		}
		utils.Logger.Error("term create failed", zap.Error(err), zap.String("spanish", req.Spanish))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not save term"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "term": term})
}

// searchTermParam reads the Spanish word to look up. "spanish" is the
// documented name; "q" is kept as a shorthand alias.
func searchTermParam(c *fiber.Ctx) string {
	if v := c.Query("spanish"); v != "" {
		return v
	}
	return c.Query("q")
}

// SearchQuechuaTerm looks up the curated translation for a Spanish word.
// GET /api/quechua/search?spanish=palabra
func SearchQuechuaTerm(c *fiber.Ctx) error {
	query := models.NormalizeTerm(searchTermParam(c))
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "spanish query param is required"})
	}

	db := database.GetDB()
	var term models.QuechuaTerm
	if err := db.Where("spanish = ?", query).First(&term).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Term not found"})
		}
		utils.Logger.Error("term search failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Search failed"})
	}

	return c.JSON(fiber.Map{"success": true, "term": term})
}

// GetAllQuechuaTerms lists the whole curated dictionary.
// GET /api/quechua/all
func GetAllQuechuaTerms(c *fiber.Ctx) error {
	db := database.GetDB()
	var terms []models.QuechuaTerm
	if err := db.Order("spanish asc").Find(&terms).Error; err != nil {
		utils.Logger.Error("term list failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not load terms"})
	}

	return c.JSON(fiber.Map{"success": true, "count": len(terms), "terms": terms})
}
