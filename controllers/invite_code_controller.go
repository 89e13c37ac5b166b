package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/neuralarc-ai/helium-inviter/services/activity"
	"github.com/neuralarc-ai/helium-inviter/services/invite"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"github.com/gin-gonic/gin"
)

// InviteCodeController handles invite-code CRUD and the dashboard stats.
type InviteCodeController struct {
	invites         *invite.InviteService
	activityService *activity.ActivityService
}

// NewInviteCodeController creates a new InviteCodeController instance.
func NewInviteCodeController(invites *invite.InviteService, activityService *activity.ActivityService) *InviteCodeController {
	return &InviteCodeController{invites: invites, activityService: activityService}
}

// GenerateCodesRequest is the body of a generate-codes call.
type GenerateCodesRequest struct {
	Count         int    `json:"count"`
	Prefix        string `json:"prefix"`
	ExpiresInDays *int   `json:"expires_in_days,omitempty"`
}

// ListInviteCodes godoc
// @Summary      List invite codes
// @Description  Returns all invite codes, newest first, with recipient display names resolved for used codes
// @Tags         invite-codes
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /invite-codes [get]
func (icc *InviteCodeController) ListInviteCodes(c *gin.Context) {
	result, err := icc.invites.ListCodes(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch invite codes", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invite codes"})
		return
	}

	resp := gin.H{"data": result.Codes}
	if len(result.Warnings) > 0 {
		resp["warnings"] = result.Warnings
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateInviteCodes godoc
// @Summary      Generate invite codes
// @Description  Generates between 1 and 100 new codes with an optional prefix and expiry
// @Tags         invite-codes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        request body GenerateCodesRequest true "Generation parameters"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /generate-codes [post]
func (icc *InviteCodeController) GenerateInviteCodes(c *gin.Context) {
	var req GenerateCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if req.Count < 1 || req.Count > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Count must be between 1 and 100"})
		return
	}
	if req.ExpiresInDays != nil && *req.ExpiresInDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires_in_days must not be negative"})
		return
	}

	codes, err := icc.invites.GenerateCodes(c.Request.Context(), req.Count, req.Prefix, req.ExpiresInDays)
	if err != nil {
		utils.LogError("Failed to generate invite codes", err)
		if errors.Is(err, invite.ErrCodeExhausted) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invite codes"})
		return
	}

	icc.activityService.RecordActivity("code", fmt.Sprintf("Generated %d invite codes", len(codes)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    codes,
		"message": fmt.Sprintf("Successfully generated %d invite codes", len(codes)),
	})
}

// UpdateInviteCode godoc
// @Summary      Update an invite code
// @Description  Applies a partial update; marking a code used stamps used_at and current_uses
// @Tags         invite-codes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id path string true "Invite code id"
// @Param        request body invite.UpdateCodeRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /invite-codes/{id} [put]
func (icc *InviteCodeController) UpdateInviteCode(c *gin.Context) {
	id := c.Param("id")

	var req invite.UpdateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	code, err := icc.invites.UpdateCode(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, invite.ErrCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invite code not found"})
			return
		}
		utils.LogError("Failed to update invite code", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invite code"})
		return
	}

	if req.IsUsed != nil && *req.IsUsed {
		icc.activityService.RecordActivity("code", fmt.Sprintf("Invite code %s marked as used", code.Code))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": code})
}

// DeleteInviteCode godoc
// @Summary      Delete an invite code
// @Description  Deletes a code by id, regardless of its state
// @Tags         invite-codes
// @Produce      json
// @Security     Bearer
// @Param        id path string true "Invite code id"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /invite-codes/{id} [delete]
func (icc *InviteCodeController) DeleteInviteCode(c *gin.Context) {
	id := c.Param("id")

	if err := icc.invites.DeleteCode(c.Request.Context(), id); err != nil {
		utils.LogError("Failed to delete invite code", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invite code"})
		return
	}

	icc.activityService.RecordActivity("code", "Invite code deleted")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invite code deleted successfully"})
}

// DeleteExpiredCodes godoc
// @Summary      Delete expired invite codes
// @Description  Removes every code whose expiry timestamp is in the past
// @Tags         invite-codes
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /invite-codes/delete-expired [post]
func (icc *InviteCodeController) DeleteExpiredCodes(c *gin.Context) {
	count, err := icc.invites.DeleteExpired(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to delete expired invite codes", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expired invite codes"})
		return
	}

	if count > 0 {
		icc.activityService.RecordActivity("code", fmt.Sprintf("Deleted %d expired invite codes", count))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": count})
}

// GetDashboardStats godoc
// @Summary      Dashboard statistics
// @Description  Aggregate counts over all invite codes
// @Tags         invite-codes
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  invite.Stats
// @Failure      500  {object}  map[string]string
// @Router       /dashboard-stats [get]
func (icc *InviteCodeController) GetDashboardStats(c *gin.Context) {
	result, err := icc.invites.ListCodes(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch dashboard stats", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard statistics"})
		return
	}

	c.JSON(http.StatusOK, invite.ComputeStats(result.Codes, time.Now()))
}
