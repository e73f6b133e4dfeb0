// handlers/auth.go - Registration, login and profile
package handlers

import (
	"errors"
	"os"
	"strings"
	"time"

	"ulenguage/database"
	"ulenguage/middleware"
	"ulenguage/models"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Plan   string `json:"plan"`
}

func userInfo(u *models.User) UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Plan: u.Plan}
}

// generateToken issues a 7-day HMAC JWT carrying the claims the auth
// middleware reads back on every request.
func generateToken(user *models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "ulenguage-secret-change-in-production"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"plan":    user.Plan,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// registerCreateStatus maps a user insert failure to a response. The
// pre-insert email check only gives a friendly fast path; a concurrent
// registration for the same email loses the race at the unique index
// and must still come back as a conflict, not a server error.
func registerCreateStatus(err error) (int, string) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return 409, "Email already registered"
	}
	return 500, "Could not create account"
}

// Register creates a new account on the free plan.
// POST /api/auth/register
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name, email and password are required"})
	}
	if len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Password must be at least 6 characters"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Email already registered"})
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Plan:      models.PlanFree,
		LastLogin: time.Now(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.Logger.Error("password hash failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not create account"})
	}

	if err := db.Create(&user).Error; err != nil {
		status, msg := registerCreateStatus(err)
		if status == 500 {
			utils.Logger.Error("user create failed", zap.Error(err), zap.String("email", req.Email))
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
	}

	token, err := generateToken(&user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not issue token"})
	}

	utils.Logger.Info("user registered", zap.Uint("user_id", user.ID))
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userInfo(&user),
	})
}

// Login authenticates by email and password.
// POST /api/auth/login
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "email and password are required"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid credentials"})
	}
	if !user.CheckPassword(req.Password) {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid credentials"})
	}

	user.LastLogin = time.Now()
	db.Model(&user).Update("last_login", user.LastLogin)

	token, err := generateToken(&user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not issue token"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userInfo(&user),
	})
}

// GetProfile returns the authenticated user's account.
// GET /api/auth/me
func GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": userInfo(&user)})
}
