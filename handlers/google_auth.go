// handlers/google_auth.go - Google sign-in
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"ulenguage/database"
	"ulenguage/models"
	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const tokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// googleClaims is the subset of the tokeninfo response we rely on.
type googleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// verifyIDToken asks Google's tokeninfo endpoint to validate the client's
// ID token and checks the audience matches our client ID.
func verifyIDToken(ctx context.Context, idToken string) (*googleClaims, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", tokenInfoEndpoint, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected token: status %d", resp.StatusCode)
	}

	var claims googleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("tokeninfo decode: %w", err)
	}

	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" && claims.Audience != clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if claims.Sub == "" || claims.Email == "" {
		return nil, fmt.Errorf("token missing subject or email")
	}
	return &claims, nil
}

// upsertGoogleUser finds or creates the account for a verified Google
// identity. Matching is by google_id first, then by email for accounts
// that registered with a password before linking Google.
func upsertGoogleUser(claims *googleClaims) (*models.User, error) {
	db := database.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not available")
	}

	var user models.User
	if err := db.Where("google_id = ?", claims.Sub).First(&user).Error; err == nil {
		user.LastLogin = time.Now()
		db.Model(&user).Updates(map[string]interface{}{
			"last_login": user.LastLogin,
			"avatar":     claims.Picture,
		})
		return &user, nil
	}

	if err := db.Where("email = ?", claims.Email).First(&user).Error; err == nil {
		sub := claims.Sub
		user.GoogleID = &sub
		user.LastLogin = time.Now()
		if err := db.Model(&user).Updates(map[string]interface{}{
			"google_id":  sub,
			"last_login": user.LastLogin,
			"avatar":     claims.Picture,
		}).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	sub := claims.Sub
	user = models.User{
		Name:      claims.Name,
		Email:     claims.Email,
		GoogleID:  &sub,
		Avatar:    claims.Picture,
		Plan:      models.PlanFree,
		LastLogin: time.Now(),
	}
	if user.Name == "" {
		user.Name = claims.Email
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	utils.Logger.Info("google user created", zap.Uint("user_id", user.ID))
	return &user, nil
}

// GoogleLogin authenticates with an ID token obtained by the mobile or
// web client.
// POST /api/auth/google
func GoogleLogin(c *fiber.Ctx) error {
	var req GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "token is required"})
	}

	claims, err := verifyIDToken(c.Context(), req.Token)
	if err != nil {
		utils.Logger.Warn("google token rejected", zap.Error(err))
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid Google token"})
	}

	user, err := upsertGoogleUser(claims)
	if err != nil {
		utils.Logger.Error("google upsert failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not sign in"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not issue token"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userInfo(user),
	})
}

// GoogleRedirect starts the server-side OAuth flow for browser clients.
// GET /api/auth/google/redirect
func GoogleRedirect(c *fiber.Ctx) error {
	cfg := oauthConfig()
	if cfg.ClientID == "" {
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Google sign-in not configured"})
	}
	return c.Redirect(cfg.AuthCodeURL("state-ulenguage", oauth2.AccessTypeOnline))
}

// GoogleCallback exchanges the authorization code, loads the Google
// profile and issues our own JWT.
// GET /api/auth/google/callback
func GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "code is required"})
	}

	cfg := oauthConfig()
	tok, err := cfg.Exchange(c.Context(), code)
	if err != nil {
		utils.Logger.Warn("oauth exchange failed", zap.Error(err))
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Authorization failed"})
	}

	client := cfg.Client(c.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Could not load Google profile"})
	}
	defer resp.Body.Close()

	var claims googleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil || claims.Sub == "" {
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Could not load Google profile"})
	}

	user, err := upsertGoogleUser(&claims)
	if err != nil {
		utils.Logger.Error("google upsert failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not sign in"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Could not issue token"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userInfo(user),
	})
}
