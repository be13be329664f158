// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/models"
)

const (
	NotificationContractCreated = "contract_created"
	NotificationContractStatus  = "contract_status"
	NotificationCollaboration   = "collaboration_invite"
)

// MailFunc matches smtp.SendMail.
type MailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
	send   MailFunc
}

// Delivery is a recorded notification waiting to be mailed once the surrounding transaction
// has committed.
type Delivery struct {
	Email        string
	Notification *models.Notification
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body>
<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
<p>{{.PlatformName}}</p>
</body>
</html>`))

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
		send:   smtp.SendMail,
	}
}

// WithMailer replaces the SMTP sender.
func (s *NotificationService) WithMailer(send MailFunc) *NotificationService {
	s.send = send
	return s
}

func (s *NotificationService) lang() string {
	if s.config == nil || s.config.I18n.DefaultLocale == "" {
		return "en"
	}
	return s.config.I18n.DefaultLocale
}

// record stores an in-app notification using db, which may be a transaction.
func (s *NotificationService) record(ctx context.Context, db *gorm.DB, recipient *models.User, kind, resourceType string, resourceID uuid.UUID, title, message string) (*Delivery, error) {
	notification := &models.Notification{
		RecipientID:         recipient.ID,
		Type:                kind,
		Title:               title,
		Message:             message,
		RelatedResourceType: resourceType,
		RelatedResourceID:   &resourceID,
	}
	if err := db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to record notification: %w", err)
	}
	return &Delivery{Email: recipient.Email, Notification: notification}, nil
}

func (s *NotificationService) ContractCreated(ctx context.Context, db *gorm.DB, contract *models.Contract, manager, artist *models.User) (*Delivery, error) {
	lang := s.lang()
	return s.record(ctx, db, artist, NotificationContractCreated, "contract", contract.ID,
		i18n.T(lang, i18n.KeyNotificationContractCreatedTitle),
		i18n.T(lang, i18n.KeyNotificationContractCreatedBody,
			manager.DisplayName(), string(contract.ContractType), contract.DurationMonths))
}

func (s *NotificationService) ContractStatusChanged(ctx context.Context, db *gorm.DB, contract *models.Contract, manager, artist *models.User) (*Delivery, error) {
	lang := s.lang()
	return s.record(ctx, db, artist, NotificationContractStatus, "contract", contract.ID,
		i18n.T(lang, i18n.KeyNotificationContractStatusTitle),
		i18n.T(lang, i18n.KeyNotificationContractStatusBody, manager.DisplayName(), string(contract.Status)))
}

func (s *NotificationService) CollaborationInvite(ctx context.Context, db *gorm.DB, collaboration *models.Collaboration, producer, artist *models.User) (*Delivery, error) {
	lang := s.lang()
	return s.record(ctx, db, artist, NotificationCollaboration, "collaboration", collaboration.ID,
		i18n.T(lang, i18n.KeyNotificationCollaborationTitle),
		i18n.T(lang, i18n.KeyNotificationCollaborationBody, producer.DisplayName(), collaboration.ProjectName))
}

// Deliver mails recorded notifications. Failures are logged, never returned: the in-app
// notification is already stored.
func (s *NotificationService) Deliver(deliveries ...*Delivery) {
	for _, d := range deliveries {
		if d == nil || d.Email == "" {
			continue
		}
		if err := s.sendEmail(d.Email, d.Notification.Title, d.Notification.Message); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"notification_id": d.Notification.ID,
				"type":            d.Notification.Type,
			}).Warn("Failed to send notification email")
		}
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.WithContext(ctx).Where("recipient_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead stamps read_at once; marking an already read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		return nil, lookupError(err, "notification")
	}
	if notification.ReadAt != nil {
		return &notification, nil
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&notification).Update("read_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	notification.ReadAt = &now
	return &notification, nil
}

func (s *NotificationService) sendEmail(to, subject, message string) error {
	if s.config == nil || !s.config.Email.Enabled() {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("Email not configured, skipping")
		return nil
	}

	body, err := renderTemplate(map[string]string{
		"Title":        subject,
		"Message":      message,
		"PlatformName": s.config.Email.FromName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)
	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return s.send(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func renderTemplate(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
