// handlers/achievements.go - Geo-Achievement HTTP handlers
package handlers

import (
	"errors"

	"ulenguage/database"
	"ulenguage/middleware"
	"ulenguage/services"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var achievementService *services.AchievementService

// InitAchievementHandlers wires the achievement service to the database.
func InitAchievementHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitAchievementHandlers")
	}
	achievementService = services.NewAchievementService(
		database.NewZoneStore(db),
		database.NewAchievementStore(db),
	)
}

type UnlockRequest struct {
	ZoneID string   `json:"zoneId"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Method string   `json:"method"`
}

type SyncRequest struct {
	Achievements []services.OfflineEntry `json:"achievements"`
}

// UnlockAchievement validates a visit claim and records the unlock.
// POST /api/achievements/unlock
func UnlockAchievement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req UnlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.ZoneID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "zoneId is required"})
	}

	achievement, err := achievementService.Unlock(userID, req.ZoneID, req.Lon, req.Lat, req.Method)
	method := req.Method
	if method == "" {
		method = "gps"
	}

	switch {
	case err == nil:
		utils.UnlockAttempts.WithLabelValues(method, "unlocked").Inc()
		utils.Logger.Info("achievement unlocked",
			zap.Uint("user_id", userID),
			zap.String("zone_id", req.ZoneID),
			zap.String("method", method))
		feedHub.Broadcast(AchievementEvent{Type: "achievement_unlocked", Achievement: *achievement})
		return c.Status(201).JSON(fiber.Map{
			"success":     true,
			"message":     "¡Logro desbloqueado!",
			"achievement": achievement,
		})

	case errors.Is(err, services.ErrAlreadyUnlocked):
		// Business-rule rejection, not a server fault. The existing
		// record rides along so the client can reconcile.
		utils.UnlockAttempts.WithLabelValues(method, "duplicate").Inc()
		return c.Status(400).JSON(fiber.Map{
			"success":     false,
			"error":       "Ya habías desbloqueado esta zona",
			"achievement": achievement,
		})

	case errors.Is(err, services.ErrZoneNotFound):
		utils.UnlockAttempts.WithLabelValues(method, "zone_not_found").Inc()
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Zone not found"})

	case errors.Is(err, services.ErrOutOfRange):
		utils.UnlockAttempts.WithLabelValues(method, "out_of_range").Inc()
		resp := fiber.Map{"success": false, "error": "You are outside the zone"}
		var rangeErr *services.RangeError
		if errors.As(err, &rangeErr) {
			resp["distance_m"] = rangeErr.DistanceM
			resp["radius_m"] = rangeErr.RadiusM
		}
		return c.Status(400).JSON(resp)

	case errors.Is(err, services.ErrMissingCoords), errors.Is(err, services.ErrInvalidMethod):
		utils.UnlockAttempts.WithLabelValues(method, "bad_request").Inc()
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})

	default:
		utils.UnlockAttempts.WithLabelValues(method, "error").Inc()
		utils.Logger.Error("unlock failed", zap.Error(err),
			zap.Uint("user_id", userID), zap.String("zone_id", req.ZoneID))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not record achievement"})
	}
}

// SyncAchievements reconciles a batch of offline unlocks. The batch
// itself always succeeds with 200; individual entries are classified as
// synced, failed, or duplicates.
// POST /api/achievements/sync
func SyncAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := achievementService.SyncOffline(userID, req.Achievements)
	if err != nil {
		if errors.Is(err, services.ErrEmptyBatch) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "No achievements to sync"})
		}
		utils.Logger.Error("sync failed", zap.Error(err), zap.Uint("user_id", userID))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Sync failed"})
	}

	for i := range result.Synced {
		feedHub.Broadcast(AchievementEvent{Type: "achievement_unlocked", Achievement: result.Synced[i]})
	}

	utils.Logger.Info("offline sync processed",
		zap.Uint("user_id", userID),
		zap.Int("synced", len(result.Synced)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("duplicates", len(result.Duplicates)))

	return c.Status(200).JSON(fiber.Map{
		"success":    true,
		"synced":     result.Synced,
		"failed":     result.Failed,
		"duplicates": result.Duplicates,
	})
}

// GetMyAchievements returns the caller's unlock history and stats.
// GET /api/achievements/me
func GetMyAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	achievements, stats, err := achievementService.ListUserAchievements(userID)
	if err != nil {
		utils.Logger.Error("list achievements failed", zap.Error(err), zap.Uint("user_id", userID))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not load achievements"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"stats":        stats,
	})
}
