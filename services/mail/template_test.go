package mail

import (
	"strings"
	"testing"
)

func TestRenderInvitation(t *testing.T) {
	code := "NA7X2K9"
	firstName := "Aditya"

	text, html, err := RenderInvitation(code, firstName)
	if err != nil {
		t.Fatalf("RenderInvitation returned error: %v", err)
	}

	// the body must mention the recipient and the code exactly once each
	if n := strings.Count(text, code); n != 1 {
		t.Errorf("text body contains code %d times, want 1", n)
	}
	if n := strings.Count(text, firstName); n != 1 {
		t.Errorf("text body contains first name %d times, want 1", n)
	}
	if n := strings.Count(html, code); n != 1 {
		t.Errorf("HTML body contains code %d times, want 1", n)
	}
	if n := strings.Count(html, firstName); n != 1 {
		t.Errorf("HTML body contains first name %d times, want 1", n)
	}

	if !strings.Contains(text, "1500 free Helium credits") {
		t.Error("text body missing the credits line")
	}
	if !strings.Contains(html, "<div") {
		t.Error("HTML body does not look like HTML")
	}
}

func TestRenderReminder(t *testing.T) {
	code := "NAQ4Z8B"
	firstName := "Priya"

	text, html, err := RenderReminder(code, firstName)
	if err != nil {
		t.Fatalf("RenderReminder returned error: %v", err)
	}

	if n := strings.Count(text, code); n != 1 {
		t.Errorf("text body contains code %d times, want 1", n)
	}
	if n := strings.Count(text, firstName); n != 1 {
		t.Errorf("text body contains first name %d times, want 1", n)
	}
	if !strings.Contains(text, "about to expire") {
		t.Error("reminder body missing the expiry warning")
	}
	if n := strings.Count(html, code); n != 1 {
		t.Errorf("HTML body contains code %d times, want 1", n)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	// a first name with markup must not survive into the HTML variant
	_, html, err := RenderInvitation("NA7X2K9", "<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderInvitation returned error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("HTML body contains unescaped markup")
	}
}
