package controllers

import (
	"net/http"
	"strconv"

	"github.com/neuralarc-ai/helium-inviter/services/activity"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	activityService *activity.ActivityService
}

func NewActivityController(activityService *activity.ActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// GetRecentActivities godoc
// @Summary      Recent admin activity
// @Description  Returns the latest recorded admin actions
// @Tags         system
// @Produce      json
// @Security     Bearer
// @Param        limit  query  int  false  "Number of entries (default 10, max 100)"
// @Success      200  {object}  Response
// @Failure      500  {object}  Response
// @Router       /admin/activities [get]
func (ac *ActivityController) GetRecentActivities(c *gin.Context) {
	limit := 10
	if limitParam := c.Query("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	activities, err := ac.activityService.GetRecentActivities(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Error: "Failed to fetch recent activities"})
		return
	}

	c.JSON(http.StatusOK, Response{Data: activities})
}
