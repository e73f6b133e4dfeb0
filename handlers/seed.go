// handlers/seed.go - Idempotent data seeding
package handlers

import (
	"os"

	"ulenguage/database"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunSeeds loads the Cusco zones, plans and curated content. Re-running
// is safe: existing rows are left untouched. Guarded by SEED_KEY when
// one is configured.
// POST /api/seed/run
func RunSeeds(c *fiber.Ctx) error {
	if key := os.Getenv("SEED_KEY"); key != "" {
		if c.Get("X-Seed-Key") != key {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "Invalid seed key"})
		}
	}

	counts, err := database.RunSeeds()
	if err != nil {
		utils.Logger.Error("seeding failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Seeding failed"})
	}

	return c.JSON(fiber.Map{"success": true, "seeded": counts})
}
