// handlers/plans.go - Subscription plan listing
package handlers

import (
	"ulenguage/database"
	"ulenguage/models"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetPlans lists the available subscription plans.
// GET /api/planes
func GetPlans(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var plans []models.Plan
	if err := db.Order("price asc").Find(&plans).Error; err != nil {
		utils.Logger.Error("plan list failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not load plans"})
	}

	return c.JSON(fiber.Map{"success": true, "plans": plans})
}
