package invite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neuralarc-ai/helium-inviter/models"
	"github.com/neuralarc-ai/helium-inviter/utils"

	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"
)

// maxGenerateAttempts bounds the regenerate-on-collision loop for a single
// code insert.
const maxGenerateAttempts = 5

// DefaultExpiryDays is applied when a generate request carries no expiry.
const DefaultExpiryDays = 30

var (
	// ErrCodeNotFound is returned when an operation targets a code that does
	// not exist.
	ErrCodeNotFound = errors.New("invite code not found")
	// ErrCodeExhausted is returned when code generation keeps colliding with
	// existing codes.
	ErrCodeExhausted = errors.New("could not generate a unique invite code")
)

// InviteService orchestrates code generation, persistence and send tracking.
type InviteService struct {
	db *gorm.DB
}

func NewInviteService(db *gorm.DB) *InviteService {
	return &InviteService{db: db}
}

// ListResult is the outcome of a list call: the rows plus any non-fatal
// warnings collected from best-effort sub-steps.
type ListResult struct {
	Codes    []models.InviteCode
	Warnings []string
}

// UpdateCodeRequest carries a partial invite-code update.
type UpdateCodeRequest struct {
	IsUsed *bool   `json:"is_used"`
	UsedBy *string `json:"used_by"`
}

// GenerateCodes creates count new codes with the given prefix. Every insert
// is wrapped in a bounded retry that regenerates the code string only when
// the unique constraint rejects it; any other failure aborts immediately.
func (s *InviteService) GenerateCodes(ctx context.Context, count int, prefix string, expiresInDays *int) ([]models.InviteCode, error) {
	days := DefaultExpiryDays
	if expiresInDays != nil {
		days = *expiresInDays
	}
	var expiresAt *time.Time
	if days > 0 {
		val := time.Now().AddDate(0, 0, days)
		expiresAt = &val
	}

	codes := make([]models.InviteCode, 0, count)
	for i := 0; i < count; i++ {
		row, err := s.insertWithRetry(ctx, prefix, expiresAt)
		if err != nil {
			return codes, err
		}
		codes = append(codes, row)
	}
	return codes, nil
}

func (s *InviteService) insertWithRetry(ctx context.Context, prefix string, expiresAt *time.Time) (models.InviteCode, error) {
	var row models.InviteCode

	backoff := retry.WithMaxRetries(maxGenerateAttempts-1, retry.NewConstant(10*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		codeStr, err := utils.GenerateInviteCode(prefix)
		if err != nil {
			return err
		}
		row = models.InviteCode{
			Code:        codeStr,
			IsUsed:      false,
			ExpiresAt:   expiresAt,
			MaxUses:     1,
			CurrentUses: 0,
			EmailSentTo: []string{},
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return row, fmt.Errorf("%w after %d attempts", ErrCodeExhausted, maxGenerateAttempts)
		}
		return row, err
	}
	return row, nil
}

// ListCodes returns every code, newest first. For used codes it resolves a
// display name from user_profiles; a failed lookup degrades to a warning
// instead of failing the list.
func (s *InviteService) ListCodes(ctx context.Context) (ListResult, error) {
	var result ListResult

	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&result.Codes).Error; err != nil {
		return result, err
	}

	userIDs := make([]string, 0)
	for _, code := range result.Codes {
		if code.IsUsed && code.UsedBy != nil {
			userIDs = append(userIDs, *code.UsedBy)
		}
	}
	if len(userIDs) == 0 {
		return result, nil
	}

	var profiles []models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		utils.LogWarn(fmt.Sprintf("Failed to fetch user profiles: %v", err))
		result.Warnings = append(result.Warnings, "failed to resolve recipient names")
		return result, nil
	}

	byID := make(map[string]models.UserProfile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	for i := range result.Codes {
		code := &result.Codes[i]
		if code.UsedBy == nil {
			continue
		}
		if profile, ok := byID[*code.UsedBy]; ok {
			if name := profile.DisplayName(); name != "" {
				code.RecipientName = &name
			}
		}
	}
	return result, nil
}

// GetByCode loads a single code by its code string.
func (s *InviteService) GetByCode(ctx context.Context, code string) (models.InviteCode, error) {
	var row models.InviteCode
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, ErrCodeNotFound
	}
	return row, err
}

// UpdateCode applies a partial update to the code with the given id. Marking
// a code used stamps used_at and sets current_uses to 1; clearing the flag
// resets both.
func (s *InviteService) UpdateCode(ctx context.Context, id string, req UpdateCodeRequest) (models.InviteCode, error) {
	var row models.InviteCode
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, ErrCodeNotFound
		}
		return row, err
	}

	updates := BuildCodeUpdates(req, time.Now())
	if len(updates) == 0 {
		return row, nil
	}
	if err := s.db.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return row, err
	}

	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	return row, err
}

// BuildCodeUpdates translates a partial update request into column writes.
// Split out so the used-flag transitions can be checked in isolation.
func BuildCodeUpdates(req UpdateCodeRequest, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.IsUsed != nil {
		updates["is_used"] = *req.IsUsed
		if *req.IsUsed {
			updates["used_at"] = now
			updates["current_uses"] = 1
		} else {
			updates["used_at"] = nil
			updates["current_uses"] = 0
		}
	}
	if req.UsedBy != nil {
		updates["used_by"] = *req.UsedBy
	}
	return updates
}

// DeleteCode deletes a code by id, unconditionally.
func (s *InviteService) DeleteCode(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.InviteCode{}, "id = ?", id).Error
}

// DeleteExpired removes every code whose expiry timestamp is in the past and
// returns how many rows went away.
func (s *InviteService) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&models.InviteCode{})
	return res.RowsAffected, res.Error
}

// RecordSend appends addr to the code's tracking list if it is not already
// there. Runs after the email went out; the caller treats a failure here as
// a warning, never as a send failure.
func (s *InviteService) RecordSend(ctx context.Context, code, addr string) error {
	var row models.InviteCode
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&row).Error; err != nil {
		return err
	}
	if row.WasSentTo(addr) {
		return nil
	}
	row.EmailSentTo = append(row.EmailSentTo, addr)
	return s.db.WithContext(ctx).Model(&row).Update("email_sent_to", row.EmailSentTo).Error
}
