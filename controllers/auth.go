package controllers

import (
	"net/http"
	"time"

	"github.com/neuralarc-ai/helium-inviter/config"
	"github.com/neuralarc-ai/helium-inviter/services/activity"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	activityService *activity.ActivityService
}

func NewAuthController(activityService *activity.ActivityService) *AuthController {
	return &AuthController{activityService: activityService}
}

// Response is the generic envelope used across controllers.
type Response struct {
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@he2.ai"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Message string `json:"message" example:"Login successful"`
}

// Login godoc
// @Summary      Admin login
// @Description  Authenticates the admin and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login body LoginRequest true "Credentials"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: "Email and password are required"})
		return
	}

	cfg := config.GetConfig()
	if cfg.Admin.Email == "" || cfg.Admin.PasswordHash == "" {
		c.JSON(http.StatusInternalServerError, Response{Error: "Admin credentials are not configured"})
		return
	}

	if req.Email != cfg.Admin.Email {
		c.JSON(http.StatusUnauthorized, Response{Error: "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, Response{Error: "Invalid email or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": req.Email,
		"role":  "admin",
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: "Failed to issue token"})
		return
	}

	ac.activityService.RecordActivity("system", "Admin logged in")

	c.JSON(http.StatusOK, LoginResponse{
		Token:   tokenString,
		Message: "Login successful",
	})
}
