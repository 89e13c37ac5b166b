package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/neuralarc-ai/helium-inviter/models"
	"github.com/neuralarc-ai/helium-inviter/services/activity"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WaitlistController handles the admin view of the signup waitlist. Entries
// are created by the public signup form elsewhere; here they are only read,
// updated and deleted.
type WaitlistController struct {
	db              *gorm.DB
	activityService *activity.ActivityService
}

func NewWaitlistController(db *gorm.DB, activityService *activity.ActivityService) *WaitlistController {
	return &WaitlistController{db: db, activityService: activityService}
}

// ListWaitlistEntries godoc
// @Summary      List waitlist entries
// @Description  Returns waitlist entries newest first; page/page_size paginate when page is given
// @Tags         waitlist
// @Produce      json
// @Security     Bearer
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Entries per page (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /waitlist [get]
func (wc *WaitlistController) ListWaitlistEntries(c *gin.Context) {
	query := wc.db.Model(&models.WaitlistEntry{}).Order("joined_at desc")

	// The dashboard normally loads the whole list and filters client-side;
	// pagination kicks in only when a page parameter is present.
	if c.Query("page") != "" {
		page := utils.GetPage(c)
		pageSize := utils.GetPageSize(c)

		var total int64
		if err := wc.db.Model(&models.WaitlistEntry{}).Count(&total).Error; err != nil {
			utils.LogError("Failed to count waitlist entries", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch waitlist entries"})
			return
		}

		var entries []models.WaitlistEntry
		if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&entries).Error; err != nil {
			utils.LogError("Failed to fetch waitlist entries", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch waitlist entries"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":      entries,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		})
		return
	}

	var entries []models.WaitlistEntry
	if err := query.Find(&entries).Error; err != nil {
		utils.LogError("Failed to fetch waitlist entries", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch waitlist entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// UpdateWaitlistEntry godoc
// @Summary      Update a waitlist entry
// @Description  Applies a field-by-field partial update; only fields present in the request are written
// @Tags         waitlist
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id path string true "Waitlist entry id"
// @Param        request body models.WaitlistUpdateRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /waitlist/{id} [put]
func (wc *WaitlistController) UpdateWaitlistEntry(c *gin.Context) {
	id := c.Param("id")

	var req models.WaitlistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var entry models.WaitlistEntry
	if err := wc.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Waitlist entry not found"})
			return
		}
		utils.LogError("Failed to look up waitlist entry", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update waitlist entry"})
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		if !utils.IsValidEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}
		updates["email"] = *req.Email
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.Reference != nil {
		updates["reference"] = *req.Reference
	}
	if req.ReferralSource != nil {
		updates["referral_source"] = *req.ReferralSource
	}
	if req.ReferralSourceOther != nil {
		updates["referral_source_other"] = *req.ReferralSourceOther
	}
	if req.IsNotified != nil {
		updates["is_notified"] = *req.IsNotified
		if *req.IsNotified {
			updates["notified_at"] = time.Now()
		} else {
			updates["notified_at"] = nil
		}
	}
	if req.PhoneNumber != nil {
		countryCode := entry.CountryCode
		if req.CountryCode != nil {
			countryCode = *req.CountryCode
		}
		normalized, err := utils.NormalizePhoneNumber(*req.PhoneNumber, countryCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
			return
		}
		updates["phone_number"] = normalized
	}
	if req.CountryCode != nil {
		updates["country_code"] = *req.CountryCode
	}

	if len(updates) > 0 {
		if err := wc.db.Model(&entry).Updates(updates).Error; err != nil {
			utils.LogError("Failed to update waitlist entry", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update waitlist entry"})
			return
		}
		if err := wc.db.First(&entry, "id = ?", id).Error; err != nil {
			utils.LogError("Failed to reload waitlist entry", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update waitlist entry"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

// MarkNotified godoc
// @Summary      Mark a waitlist entry notified
// @Description  Sets the notified flag and timestamp
// @Tags         waitlist
// @Produce      json
// @Security     Bearer
// @Param        id path string true "Waitlist entry id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /waitlist/{id}/notify [post]
func (wc *WaitlistController) MarkNotified(c *gin.Context) {
	id := c.Param("id")

	var entry models.WaitlistEntry
	if err := wc.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Waitlist entry not found"})
			return
		}
		utils.LogError("Failed to look up waitlist entry", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark entry as notified"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_notified": true,
		"notified_at": now,
	}
	if err := wc.db.Model(&entry).Updates(updates).Error; err != nil {
		utils.LogError("Failed to mark waitlist entry as notified", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark entry as notified"})
		return
	}

	wc.activityService.RecordActivity("waitlist", fmt.Sprintf("Waitlist entry %s marked as notified", entry.Email))

	entry.IsNotified = true
	entry.NotifiedAt = &now
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

// DeleteWaitlistEntry godoc
// @Summary      Delete a waitlist entry
// @Tags         waitlist
// @Produce      json
// @Security     Bearer
// @Param        id path string true "Waitlist entry id"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /waitlist/{id} [delete]
func (wc *WaitlistController) DeleteWaitlistEntry(c *gin.Context) {
	id := c.Param("id")

	if err := wc.db.Delete(&models.WaitlistEntry{}, "id = ?", id).Error; err != nil {
		utils.LogError("Failed to delete waitlist entry", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete waitlist entry"})
		return
	}

	wc.activityService.RecordActivity("waitlist", "Waitlist entry deleted")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Waitlist entry deleted successfully"})
}
