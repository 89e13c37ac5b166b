package mail

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"sync"
	texttemplate "text/template"
	"time"

	"github.com/neuralarc-ai/helium-inviter/config"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"
)

// MailService renders the invitation templates and submits them over SMTP.
// It is stateless per call apart from the duplicate-send suppression map.
type MailService struct {
	config *config.Config
	// suppresses identical sends fired in quick succession
	sentMails sync.Map
}

func NewMailService() *MailService {
	return &MailService{
		config: config.GetConfig(),
	}
}

// ErrDuplicateSend is returned when an identical mail already went out in the
// current suppression window. Failed attempts never arm the window, so the
// admin can immediately re-trigger a send that errored.
var ErrDuplicateSend = errors.New("duplicate send detected, skipped")

// shouldRetry reports whether the transport error is transient enough for a
// single immediate retry.
func (s *MailService) shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "i/o timeout")
}

func (s *MailService) suppressionKey(mailKey string) string {
	return fmt.Sprintf("%s_%d", mailKey, time.Now().Unix()/300)
}

// isDuplicateSend reports whether an identical mail was already delivered
// within the current 5-minute window.
func (s *MailService) isDuplicateSend(mailKey string) bool {
	_, sent := s.sentMails.Load(s.suppressionKey(mailKey))
	return sent
}

// markSent arms the suppression window for a mail that was actually accepted
// by the transport.
func (s *MailService) markSent(mailKey string) {
	key := s.suppressionKey(mailKey)
	s.sentMails.Store(key, true)
	go func() {
		time.Sleep(5 * time.Minute)
		s.sentMails.Delete(key)
	}()
}

// sendMailInternal submits the message with a strict port/TLS pairing: 465
// is SSL/TLS only, 587 is STARTTLS only, 25 is plain only.
func (s *MailService) sendMailInternal(e *email.Email) error {
	addr := fmt.Sprintf("%s:%d", s.config.Mail.Host, s.config.Mail.Port)
	auth := smtp.PlainAuth("", s.config.Mail.Username, s.config.Mail.Password, s.config.Mail.Host)

	tlsConfig := &tls.Config{
		ServerName:         s.config.Mail.Host,
		InsecureSkipVerify: true, // some beta-stage SMTP relays present self-signed certs
		MinVersion:         tls.VersionTLS12,
	}

	if s.config.Mail.UseTLS {
		switch s.config.Mail.Port {
		case 465:
			return e.SendWithTLS(addr, auth, tlsConfig)
		case 587:
			return e.SendWithStartTLS(addr, auth, tlsConfig)
		default:
			return fmt.Errorf("unsupported port/TLS combination: port %d with UseTLS=%v", s.config.Mail.Port, s.config.Mail.UseTLS)
		}
	}
	if s.config.Mail.Port == 25 {
		return e.Send(addr, auth)
	}
	return fmt.Errorf("unsupported port without TLS: port %d with UseTLS=%v", s.config.Mail.Port, s.config.Mail.UseTLS)
}

// send delivers the message, retrying once on transient transport errors,
// and returns the message id stamped on it.
func (s *MailService) send(e *email.Email) (string, error) {
	messageID := s.newMessageID()
	e.Headers.Set("Message-Id", messageID)

	err := s.sendMailInternal(e)
	if err != nil && s.shouldRetry(err) {
		time.Sleep(2 * time.Second)
		err = s.sendMailInternal(e)
	}
	if err != nil {
		return "", err
	}
	return messageID, nil
}

func (s *MailService) newMessageID() string {
	domain := s.config.Mail.FromAddress
	if at := strings.LastIndex(domain, "@"); at >= 0 {
		domain = domain[at+1:]
	}
	if domain == "" {
		domain = "localhost"
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

func (s *MailService) from() string {
	return fmt.Sprintf("%s <%s>", s.config.Mail.FromName, s.config.Mail.FromAddress)
}

// SendInvitation sends the initial beta invitation for the given code.
// Returns the transport message id.
func (s *MailService) SendInvitation(to, code, firstName string) (string, error) {
	mailKey := fmt.Sprintf("invite_%s_%s", to, code)
	if s.isDuplicateSend(mailKey) {
		return "", ErrDuplicateSend
	}

	text, html, err := RenderInvitation(code, firstName)
	if err != nil {
		return "", err
	}

	e := email.NewEmail()
	e.From = s.from()
	e.To = []string{to}
	e.Subject = "Your Helium Beta Invitation"
	e.Text = []byte(text)
	e.HTML = []byte(html)

	messageID, err := s.send(e)
	if err != nil {
		return "", fmt.Errorf("failed to send invitation email: %v", err)
	}
	s.markSent(mailKey)
	return messageID, nil
}

// SendReminder sends the expiry reminder for an already-issued code.
func (s *MailService) SendReminder(to, code, firstName string) (string, error) {
	mailKey := fmt.Sprintf("reminder_%s_%s", to, code)
	if s.isDuplicateSend(mailKey) {
		return "", ErrDuplicateSend
	}

	text, html, err := RenderReminder(code, firstName)
	if err != nil {
		return "", err
	}

	e := email.NewEmail()
	e.From = s.from()
	e.To = []string{to}
	e.Subject = "Reminder - Your Helium invite code is expiring soon!"
	e.Text = []byte(text)
	e.HTML = []byte(html)

	messageID, err := s.send(e)
	if err != nil {
		return "", fmt.Errorf("failed to send reminder email: %v", err)
	}
	s.markSent(mailKey)
	return messageID, nil
}

// SendTest sends a plain configuration-check message.
func (s *MailService) SendTest(to string) (string, error) {
	e := email.NewEmail()
	e.From = s.from()
	e.To = []string{to}
	e.Subject = "Helium Inviter - Test Email"
	e.Text = []byte("This is a test email from Helium Inviter. If you receive this, your email configuration is working correctly!")
	e.HTML = []byte("<p>This is a test email from Helium Inviter. If you receive this, your email configuration is working correctly!</p>")

	messageID, err := s.send(e)
	if err != nil {
		return "", fmt.Errorf("failed to send test email: %v", err)
	}
	return messageID, nil
}

type templateData struct {
	Code      string
	FirstName string
}

const invitationText = `Dear {{.FirstName}},

Congratulations! You have been selected to join Helium - the OS for your business, in our first-ever Public Beta experience for businesses.

Your account has been credited with 1500 free Helium credits to explore and experience the power of Helium. Use the code below to activate your invite and get started:

{{.Code}}

Helium is designed to be the operating system for business intelligence, giving you a single, seamless layer to connect data, decisions, and workflows. As this is our first public beta, you may notice minor bugs or quirks. If you do, your feedback will help us make Helium even better.

You are not just testing a product. You are helping shape the future of business intelligence.

Welcome to Helium OS. The future of work is here.

Cheers,
Team Helium
https://he2.ai`

const invitationHTML = `
<div style="background-color: #CDCDCD; padding: 40px; font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto;">
		<p>Dear {{.FirstName}},</p>
		<p><strong>Congratulations!</strong> You have been selected to join <strong>Helium</strong> - the <strong>OS</strong> for your business, our first-ever Public Beta experience for businesses.</p>
		<p>Your account has been credited with <strong>1500 free Helium credits</strong> to explore and experience the power of Helium. Use the code below to activate your invite and get started:</p>
		<div style="background-color: #fff; padding: 20px; margin: 20px 0; border-radius: 4px; text-align: center; font-size: 18px; font-weight: bold; color: #333;">{{.Code}}</div>
		<p>Helium is designed to be the operating system for business intelligence, giving you a single, seamless layer to connect data, decisions, and workflows. As this is our first public beta, you may notice minor bugs or quirks. If you do, your feedback will help us make Helium even better.</p>
		<p>You are not just testing a product. You are helping shape the future of business intelligence.</p>
		<p>Welcome to <strong>Helium OS</strong>. The future of work is here.</p>
		<p>Cheers,<br>Team Helium</p>
		<p><a href="https://he2.ai" style="color: #333; text-decoration: none;">www.he2.ai</a></p>
		<div style="margin-top: 30px; font-size: 12px; color: #666;">
			Helium AI by Neural Arc Inc. <a href="https://neuralarc.ai" style="color: #666; text-decoration: none;">https://neuralarc.ai</a>
		</div>
	</div>
</div>`

const reminderText = `Dear {{.FirstName}},

Just a quick reminder - your exclusive Helium invite code is about to expire.

{{.Code}}

We'd hate for you to miss out on your 1500 free Helium credits and a special 30% discount available only during this early access period.

Welcome (again) to Helium OS. The future of work is here - make sure you're part of it.

Cheers,
Team Helium
https://he2.ai`

const reminderHTML = `
<div style="background-color: #CDCDCD; padding: 40px; font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto;">
		<p>Dear {{.FirstName}},</p>
		<p>Just a quick reminder - your exclusive Helium invite code is about to expire.</p>
		<div style="background-color: #fff; padding: 20px; margin: 20px 0; border-radius: 4px; text-align: center; font-size: 18px; font-weight: bold; color: #333;">{{.Code}}</div>
		<p>We'd hate for you to miss out on your <strong>1500 free Helium credits</strong> and a special 30% discount available only during this early access period.</p>
		<p>Welcome (again) to <strong>Helium OS</strong>. The future of work is here - make sure you're part of it.</p>
		<p>Cheers,<br>Team Helium</p>
		<p><a href="https://he2.ai" style="color: #333; text-decoration: none;">www.he2.ai</a></p>
		<div style="margin-top: 30px; font-size: 12px; color: #666;">
			Helium AI by Neural Arc Inc. <a href="https://neuralarc.ai" style="color: #666; text-decoration: none;">https://neuralarc.ai</a>
		</div>
	</div>
</div>`

// RenderInvitation produces the plain-text and HTML bodies of the initial
// invitation.
func RenderInvitation(code, firstName string) (string, string, error) {
	return renderPair("invitation", invitationText, invitationHTML, templateData{Code: code, FirstName: firstName})
}

// RenderReminder produces the plain-text and HTML bodies of the expiry
// reminder.
func RenderReminder(code, firstName string) (string, string, error) {
	return renderPair("reminder", reminderText, reminderHTML, templateData{Code: code, FirstName: firstName})
}

func renderPair(name, textTmpl, htmlTmpl string, data templateData) (string, string, error) {
	text, err := renderText(name+"_text", textTmpl, data)
	if err != nil {
		return "", "", err
	}
	html, err := renderHTML(name+"_html", htmlTmpl, data)
	if err != nil {
		return "", "", err
	}
	return text, html, nil
}

func renderText(name, tmplStr string, data templateData) (string, error) {
	tmpl, err := texttemplate.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %v", name, err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %v", name, err)
	}
	return body.String(), nil
}

func renderHTML(name, tmplStr string, data templateData) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %v", name, err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %v", name, err)
	}
	return body.String(), nil
}
