package controllers

import (
	"net/http"

	"github.com/neuralarc-ai/helium-inviter/config"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"github.com/gin-gonic/gin"
)

// MailSettingsRequest is the SMTP configuration update body.
// @Description SMTP server configuration
type MailSettingsRequest struct {
	Host        string `json:"host" binding:"required" example:"smtp.gmail.com" description:"SMTP server address"`
	Port        int    `json:"port" binding:"required" example:"587" description:"SMTP server port"`
	Username    string `json:"username" binding:"required" example:"your-email@gmail.com" description:"SMTP username"`
	Password    string `json:"password" example:"your-password" description:"SMTP password (leave empty to keep the current one)"`
	FromAddress string `json:"from_address" binding:"required,email" example:"noreply@he2.ai" description:"Sender address"`
	FromName    string `json:"from_name" binding:"required" example:"Team Helium" description:"Sender display name"`
	UseTLS      bool   `json:"use_tls" example:"true" description:"Whether to use TLS"`
}

// MailSettingsResponse is the SMTP configuration as returned to the admin.
// @Description SMTP server configuration, password omitted
type MailSettingsResponse struct {
	Host        string `json:"host" example:"smtp.gmail.com"`
	Port        int    `json:"port" example:"587"`
	Username    string `json:"username" example:"your-email@gmail.com"`
	FromAddress string `json:"from_address" example:"noreply@he2.ai"`
	FromName    string `json:"from_name" example:"Team Helium"`
	UseTLS      bool   `json:"use_tls" example:"true"`
}

type MailSettingsController struct{}

func NewMailSettingsController() *MailSettingsController {
	return &MailSettingsController{}
}

// GetMailSettings godoc
// @Summary      Get mail settings
// @Description  Returns the current SMTP configuration, without the password
// @Tags         mail
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  MailSettingsResponse
// @Router       /admin/mail/settings [get]
func (mc *MailSettingsController) GetMailSettings(c *gin.Context) {
	cfg := config.GetConfig()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": MailSettingsResponse{
			Host:        cfg.Mail.Host,
			Port:        cfg.Mail.Port,
			Username:    cfg.Mail.Username,
			FromAddress: cfg.Mail.FromAddress,
			FromName:    cfg.Mail.FromName,
			UseTLS:      cfg.Mail.UseTLS,
		},
	})
}

// UpdateMailSettings godoc
// @Summary      Update mail settings
// @Description  Updates the SMTP configuration and persists it
// @Tags         mail
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      MailSettingsRequest  true  "Mail settings"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response
// @Failure      500  {object}  Response
// @Router       /admin/mail/settings [put]
func (mc *MailSettingsController) UpdateMailSettings(c *gin.Context) {
	var req MailSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	cfg := config.GetConfig()
	cfg.Mail.Host = req.Host
	cfg.Mail.Port = req.Port
	cfg.Mail.Username = req.Username
	if req.Password != "" {
		cfg.Mail.Password = req.Password
	}
	cfg.Mail.FromAddress = req.FromAddress
	cfg.Mail.FromName = req.FromName
	cfg.Mail.UseTLS = req.UseTLS

	if err := config.SaveConfig(); err != nil {
		utils.LogError("Failed to persist mail settings", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to save mail settings",
			"error":   err.Error(),
		})
		return
	}

	utils.LogInfo("Mail settings updated")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mail settings updated successfully",
	})
}
