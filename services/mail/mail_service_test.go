package mail

import (
	"errors"
	"strings"
	"testing"

	"github.com/neuralarc-ai/helium-inviter/config"
)

// testMailService returns a service whose transport config is rejected by
// sendMailInternal before any network dial, so send attempts fail fast and
// deterministically.
func testMailService() *MailService {
	return &MailService{
		config: &config.Config{
			Mail: config.MailConfig{
				Host:        "127.0.0.1",
				Port:        2525,
				UseTLS:      false,
				FromAddress: "beta@he2.ai",
				FromName:    "Helium",
			},
		},
	}
}

func TestFailedSendDoesNotBlockImmediateRetry(t *testing.T) {
	s := testMailService()

	_, err := s.SendInvitation("admin@example.com", "NA7X2K9", "Ada")
	if err == nil {
		t.Fatal("expected a transport error from the first attempt")
	}
	if errors.Is(err, ErrDuplicateSend) {
		t.Fatalf("first attempt reported as duplicate: %v", err)
	}

	// A failed attempt must leave the suppression window unarmed so the
	// admin can re-trigger the send right away.
	_, err = s.SendInvitation("admin@example.com", "NA7X2K9", "Ada")
	if err == nil {
		t.Fatal("expected a transport error from the retry")
	}
	if errors.Is(err, ErrDuplicateSend) {
		t.Fatalf("retry after failure was suppressed: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to send invitation email") {
		t.Errorf("retry error = %q, want a transport failure", err)
	}
}

func TestFailedReminderDoesNotBlockImmediateRetry(t *testing.T) {
	s := testMailService()

	if _, err := s.SendReminder("admin@example.com", "NA7X2K9", "Ada"); err == nil {
		t.Fatal("expected a transport error from the first attempt")
	}
	_, err := s.SendReminder("admin@example.com", "NA7X2K9", "Ada")
	if errors.Is(err, ErrDuplicateSend) {
		t.Fatalf("retry after failure was suppressed: %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "failed to send reminder email") {
		t.Errorf("retry error = %v, want a transport failure", err)
	}
}

func TestSuppressionArmsOnlyAfterDelivery(t *testing.T) {
	s := testMailService()
	key := "invite_admin@example.com_NA7X2K9"

	if s.isDuplicateSend(key) {
		t.Fatal("window armed before any delivery")
	}
	s.markSent(key)
	if !s.isDuplicateSend(key) {
		t.Fatal("window not armed after delivery")
	}
	if s.isDuplicateSend("invite_other@example.com_NA7X2K9") {
		t.Fatal("unrelated key suppressed")
	}

	_, err := s.SendInvitation("admin@example.com", "NA7X2K9", "Ada")
	if !errors.Is(err, ErrDuplicateSend) {
		t.Fatalf("send within an armed window = %v, want ErrDuplicateSend", err)
	}
}
