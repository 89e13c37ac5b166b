package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/neuralarc-ai/helium-inviter/config"
	"github.com/neuralarc-ai/helium-inviter/services/activity"
	"github.com/neuralarc-ai/helium-inviter/services/invite"
	"github.com/neuralarc-ai/helium-inviter/services/mail"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"github.com/gin-gonic/gin"
)

// EmailController handles the transactional email endpoints.
type EmailController struct {
	mailService     *mail.MailService
	invites         *invite.InviteService
	activityService *activity.ActivityService
}

func NewEmailController(mailService *mail.MailService, invites *invite.InviteService, activityService *activity.ActivityService) *EmailController {
	return &EmailController{mailService: mailService, invites: invites, activityService: activityService}
}

// SendEmailRequest is the body of both send-invite-email and
// send-reminder-email.
type SendEmailRequest struct {
	Email      string `json:"email"`
	InviteCode string `json:"inviteCode"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName,omitempty"`
}

// TestEmailRequest is the body of test-email.
type TestEmailRequest struct {
	TestEmail string `json:"testEmail"`
}

// validateSendRequest checks required fields and the address shape before
// any database or transport work happens.
func validateSendRequest(req SendEmailRequest) (int, string) {
	if req.Email == "" || req.InviteCode == "" || req.FirstName == "" {
		return http.StatusBadRequest, "Email, invite code, and first name are required"
	}
	if !utils.IsValidEmail(req.Email) {
		return http.StatusBadRequest, "Invalid email format"
	}
	return 0, ""
}

// capitalizeName uppercases the first letter and lowercases the rest, the
// way the dashboard displays first names.
func capitalizeName(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r)) + strings.ToLower(name[size:])
}

func recipientName(req SendEmailRequest) string {
	first := capitalizeName(strings.TrimSpace(req.FirstName))
	if last := strings.TrimSpace(req.LastName); last != "" {
		return first + " " + last
	}
	return first
}

// SendInviteEmail godoc
// @Summary      Send an invitation email
// @Description  Sends the beta invitation for an unused, unexpired code and records the recipient on the code's tracking list
// @Tags         email
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        request body SendEmailRequest true "Recipient and code"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /send-invite-email [post]
func (ec *EmailController) SendInviteEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if status, msg := validateSendRequest(req); status != 0 {
		c.JSON(status, gin.H{"error": msg})
		return
	}

	code, err := ec.invites.GetByCode(c.Request.Context(), req.InviteCode)
	if err != nil {
		if errors.Is(err, invite.ErrCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite code not found"})
			return
		}
		utils.LogError("Failed to look up invite code", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up invite code"})
		return
	}

	if code.IsUsed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code has already been used"})
		return
	}
	if code.IsExpired(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code has expired"})
		return
	}

	firstName := capitalizeName(strings.TrimSpace(req.FirstName))
	messageID, err := ec.mailService.SendInvitation(req.Email, code.Code, firstName)
	if err != nil {
		if errors.Is(err, mail.ErrDuplicateSend) {
			// The previous identical send already went out.
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "An identical email was sent moments ago; duplicate delivery skipped",
			})
			return
		}
		utils.LogError("Failed to send invitation email", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": sendErrorMessage(err)})
		return
	}

	// The email is out; tracking is best-effort from here.
	var warnings []string
	if err := ec.invites.RecordSend(c.Request.Context(), code.Code, req.Email); err != nil {
		utils.LogWarn(fmt.Sprintf("Failed to track email send for code %s: %v", code.Code, err))
		warnings = append(warnings, "email sent but tracking update failed")
	}

	ec.activityService.RecordActivity("email", fmt.Sprintf("Invitation for code %s sent to %s", code.Code, req.Email))

	resp := gin.H{
		"success":   true,
		"messageId": messageID,
		"message":   "Email sent successfully",
		"recipient": gin.H{
			"email":      req.Email,
			"name":       recipientName(req),
			"inviteCode": code.Code,
		},
	}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

// SendReminderEmail godoc
// @Summary      Send a reminder email
// @Description  Sends the expiry reminder for a code that has already been emailed to someone
// @Tags         email
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        request body SendEmailRequest true "Recipient and code"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /send-reminder-email [post]
func (ec *EmailController) SendReminderEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if status, msg := validateSendRequest(req); status != 0 {
		c.JSON(status, gin.H{"error": msg})
		return
	}

	code, err := ec.invites.GetByCode(c.Request.Context(), req.InviteCode)
	if err != nil {
		if errors.Is(err, invite.ErrCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite code not found"})
			return
		}
		utils.LogError("Failed to look up invite code", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up invite code"})
		return
	}

	if code.IsUsed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code has already been used"})
		return
	}
	if code.IsExpired(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code has expired"})
		return
	}
	if len(code.EmailSentTo) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No email found for this invite code"})
		return
	}

	firstName := capitalizeName(strings.TrimSpace(req.FirstName))
	messageID, err := ec.mailService.SendReminder(req.Email, code.Code, firstName)
	if err != nil {
		if errors.Is(err, mail.ErrDuplicateSend) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "An identical email was sent moments ago; duplicate delivery skipped",
			})
			return
		}
		utils.LogError("Failed to send reminder email", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": sendErrorMessage(err)})
		return
	}

	var warnings []string
	if err := ec.invites.RecordSend(c.Request.Context(), code.Code, req.Email); err != nil {
		utils.LogWarn(fmt.Sprintf("Failed to track reminder send for code %s: %v", code.Code, err))
		warnings = append(warnings, "email sent but tracking update failed")
	}

	ec.activityService.RecordActivity("email", fmt.Sprintf("Reminder for code %s sent to %s", code.Code, req.Email))

	resp := gin.H{
		"success":   true,
		"messageId": messageID,
		"message":   "Reminder email sent successfully",
		"recipient": gin.H{
			"email":      req.Email,
			"name":       recipientName(req),
			"inviteCode": code.Code,
		},
	}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

// SendTestEmail godoc
// @Summary      Send a test email
// @Description  Sends a configuration-check message to the given address
// @Tags         email
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        request body TestEmailRequest true "Test recipient"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /test-email [post]
func (ec *EmailController) SendTestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.TestEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Test email address is required"})
		return
	}
	if !utils.IsValidEmail(req.TestEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	messageID, err := ec.mailService.SendTest(req.TestEmail)
	if err != nil {
		utils.LogError("Failed to send test email", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": sendErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
		"message":   "Test email sent successfully",
	})
}

// sendErrorMessage exposes the transport error in development and a generic
// message otherwise.
func sendErrorMessage(err error) string {
	if config.GetConfig().IsDevelopment() {
		return err.Error()
	}
	return "Failed to send email"
}
