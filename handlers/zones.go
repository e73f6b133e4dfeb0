// handlers/zones.go - Zone listing endpoints
package handlers

import (
	"strconv"

	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetAllZones returns every active zone. QR codes are never serialized.
// GET /api/zones
func GetAllZones(c *fiber.Ctx) error {
	zones, err := achievementService.ListZones()
	if err != nil {
		utils.Logger.Error("list zones failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not load zones"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(zones),
		"zones":   zones,
	})
}

// GetNearbyZones returns active zones within radius meters of the given
// point, nearest first. Radius defaults to 5km.
// GET /api/zones/nearby?lat=..&lon=..&radius=..
func GetNearbyZones(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "lat and lon query params are required"})
	}

	radius := 0.0
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "radius must be a positive number"})
		}
		radius = parsed
	}

	nearby, err := achievementService.FindNearby(lon, lat, radius)
	if err != nil {
		utils.Logger.Error("nearby zones failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not load zones"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(nearby),
		"zones":   nearby,
	})
}
