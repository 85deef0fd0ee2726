package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"
)

// EmailService interface for sending emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
	SendTemplate(ctx context.Context, to, subject, templateName string, data interface{}) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// NewSMTPConfigFromEnv creates SMTP config from environment variables
func NewSMTPConfigFromEnv() *SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	timeout, _ := time.ParseDuration(os.Getenv("SMTP_TIMEOUT"))
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Port:      port,
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: os.Getenv("FROM_EMAIL"),
		FromName:  "Skyport",
		UseTLS:    true,
		Timeout:   timeout,
	}
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config    *SMTPConfig
	templates map[string]*template.Template
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(config *SMTPConfig) *SMTPEmailService {
	if err := validateSMTPConfig(config); err != nil {
		log.Fatalf("Invalid SMTP configuration: %v", err)
	}

	service := &SMTPEmailService{
		config:    config,
		templates: make(map[string]*template.Template),
	}

	service.loadDefaultTemplates()

	return service
}

// validateSMTPConfig validates SMTP configuration
func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}

	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}

	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}

	if config.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}

	if config.FromEmail == "" {
		return fmt.Errorf("From email is required")
	}

	return nil
}

// SendNotification sends an email notification
func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [SMTP] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)

	htmlBody, textBody, err := s.generateContent(notification)
	if err != nil {
		return fmt.Errorf("failed to generate email content: %w", err)
	}

	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

// SendHTML sends an HTML email with a plain-text alternative
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// SendTemplate sends an email using a registered template
func (s *SMTPEmailService) SendTemplate(ctx context.Context, to, subject, templateName string, data interface{}) error {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var htmlBuf, textBuf bytes.Buffer

	if err := tmpl.ExecuteTemplate(&htmlBuf, "html", data); err != nil {
		return fmt.Errorf("failed to execute HTML template: %w", err)
	}

	// Fall back to a placeholder when no text variant exists
	if err := tmpl.ExecuteTemplate(&textBuf, "text", data); err != nil {
		textBuf.WriteString("Please view this email in HTML format.")
	}

	return s.SendHTML(ctx, to, subject, htmlBuf.String(), textBuf.String())
}

// sendWithSTARTTLS sends email with STARTTLS encryption (recommended for Gmail)
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	_, err = w.Write(message)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

// generateContent generates email content from notification data
func (s *SMTPEmailService) generateContent(notification *EmailNotification) (string, string, error) {
	return s.generateDefaultContent(notification)
}

// generateDefaultContent creates default email content for notification types
func (s *SMTPEmailService) generateDefaultContent(notification *EmailNotification) (string, string, error) {
	data := notification.TemplateData

	orderRef := "your order"
	if notification.OrderID != nil {
		orderRef = notification.OrderID.String()
	}

	switch notification.Type {
	case NotificationTypeOrderConfirmed:
		htmlBody := fmt.Sprintf(`
			<h2>✈️ Order Confirmed</h2>
			<p>Hi %s,</p>
			<p>Your order <strong>%s</strong> has been confirmed!</p>
			<p>Tickets booked: %v</p>
			<p>Your seats are reserved. You can review them any time from your orders page.</p>
			<p>Safe travels,<br>Skyport Team</p>
		`,
			notification.RecipientName,
			orderRef,
			data["ticket_count"],
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour order %s has been confirmed!\nTickets booked: %v\nYour seats are reserved. You can review them any time from your orders page.\n\nSafe travels,\nSkyport Team",
			notification.RecipientName,
			orderRef,
			data["ticket_count"],
		)

		return htmlBody, textBody, nil

	case NotificationTypeOrderCancelled:
		htmlBody := fmt.Sprintf(`
			<h2>❌ Order Cancelled</h2>
			<p>Hi %s,</p>
			<p>Your order <strong>%s</strong> has been cancelled and its seats have been released.</p>
			<p>If this was a mistake, the seats may still be available to book again.</p>
			<p>Best regards,<br>Skyport Team</p>
		`,
			notification.RecipientName,
			orderRef,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour order %s has been cancelled and its seats have been released.\nIf this was a mistake, the seats may still be available to book again.\n\nBest regards,\nSkyport Team",
			notification.RecipientName,
			orderRef,
		)

		return htmlBody, textBody, nil

	case NotificationTypeWelcome:
		htmlBody := fmt.Sprintf(`
			<h2>✈️ Welcome to Skyport</h2>
			<p>Hi %s,</p>
			<p>Your account is ready. Search for flights, pick your seats, and you are on your way.</p>
			<p>Best regards,<br>Skyport Team</p>
		`,
			notification.RecipientName,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour account is ready. Search for flights, pick your seats, and you are on your way.\n\nBest regards,\nSkyport Team",
			notification.RecipientName,
		)

		return htmlBody, textBody, nil

	default:
		htmlBody := fmt.Sprintf(`
			<h2>%s</h2>
			<p>Hi %s,</p>
			<p>This is a notification from Skyport.</p>
			<p>Best regards,<br>Skyport Team</p>
		`,
			notification.Subject,
			notification.RecipientName,
		)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nThis is a notification from Skyport.\n\nBest regards,\nSkyport Team",
			notification.RecipientName,
		)

		return htmlBody, textBody, nil
	}
}

// loadDefaultTemplates loads default email templates
func (s *SMTPEmailService) loadDefaultTemplates() {
	// This would typically load from files or a database.
	// For now generateDefaultContent covers the built-in types.
	log.Println("📧 Default email templates loaded")
}

type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendNotification sends a mock notification
func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [MOCK] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)
	return nil
}

// SendHTML sends a mock HTML email
func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	log.Printf("📧 [MOCK] HTML Body: %s", strings.TrimSpace(htmlBody))
	return nil
}

// SendTemplate sends a mock template email
func (s *MockEmailService) SendTemplate(ctx context.Context, to, subject, templateName string, data interface{}) error {
	log.Printf("📧 [MOCK] Template: %s, To: %s, Subject: %s", templateName, to, subject)
	return nil
}
