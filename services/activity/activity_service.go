package activity

import (
	"github.com/neuralarc-ai/helium-inviter/models"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"gorm.io/gorm"
)

// ActivityService records admin actions for the dashboard feed.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// RecordActivity stores a new activity entry.
func (s *ActivityService) RecordActivity(activityType string, content string) error {
	activity := models.Activity{
		Type:    activityType,
		Content: content,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		utils.LogError("Failed to record activity", err)
		return err
	}

	return nil
}

// GetRecentActivities returns the latest activity entries.
func (s *ActivityService) GetRecentActivities(limit int) ([]models.Activity, error) {
	var activities []models.Activity

	if err := s.db.Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		utils.LogError("Failed to fetch recent activities", err)
		return nil, err
	}

	return activities, nil
}
