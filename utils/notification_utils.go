package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/Travelora/travelora_backend/models"
)

// ApprovalNotifier delivers category-approval emails and in-app notifications.
// Delivery failures are logged and never propagated: a lost email must not
// roll back a state transition.
type ApprovalNotifier struct {
	DB *mongo.Database
}

func NewApprovalNotifier(db *mongo.Database) *ApprovalNotifier {
	return &ApprovalNotifier{DB: db}
}

// RequestSubmitted notifies every admin account about a newly submitted
// category approval request.
func (n *ApprovalNotifier) RequestSubmitted(ctx context.Context, user *models.User, req *models.CategoryApprovalRequest) {
	cursor, err := n.DB.Collection("users").Find(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		log.Printf("Failed to load admin accounts for notification: %v", err)
		return
	}
	defer cursor.Close(ctx)

	var admins []models.User
	if err = cursor.All(ctx, &admins); err != nil {
		log.Printf("Failed to decode admin accounts for notification: %v", err)
		return
	}

	subject := fmt.Sprintf("New %s approval request", req.Category)
	body := fmt.Sprintf("Dear admin,\n\n%s has submitted a new approval request for the %s category.\nPlease review it in the admin dashboard.\n\nBest regards,\nTravelora", user.FullName, req.Category)

	for _, admin := range admins {
		n.sendEmail(admin.Email, subject, body)
		_ = n.saveNotification(ctx, admin.ID, subject,
			fmt.Sprintf("%s requested approval for %s.", user.FullName, req.Category),
			"approval_request_submitted", map[string]interface{}{
				"requestId": req.ID.Hex(),
				"category":  req.Category,
			})
	}
}

// StatusChanged notifies the submitting account about an admin decision.
func (n *ApprovalNotifier) StatusChanged(ctx context.Context, req *models.CategoryApprovalRequest) {
	var user models.User
	err := n.DB.Collection("users").FindOne(ctx, bson.M{"_id": req.UserID}).Decode(&user)
	if err != nil {
		log.Printf("Failed to find user %s for status notification: %v", req.UserID.Hex(), err)
		return
	}

	var subject, body string
	switch req.Status {
	case models.StatusApproved:
		subject = fmt.Sprintf("Your %s request was approved", req.Category)
		body = fmt.Sprintf("Dear %s,\n\nYour approval request for the %s category has been approved. You can now publish listings in this category.\n\nBest regards,\nTravelora", user.FullName, req.Category)
	case models.StatusRejected:
		subject = fmt.Sprintf("Your %s request was rejected", req.Category)
		body = fmt.Sprintf("Dear %s,\n\nYour approval request for the %s category has been rejected.\nReason: %s\n\nBest regards,\nTravelora", user.FullName, req.Category, req.RejectionReason)
	case models.StatusResubmissionRequired:
		subject = fmt.Sprintf("Your %s request needs changes", req.Category)
		body = fmt.Sprintf("Dear %s,\n\nYour approval request for the %s category needs changes before it can be approved.\nReason: %s\nPlease update your request and resubmit.\n\nBest regards,\nTravelora", user.FullName, req.Category, req.RejectionReason)
	default:
		return
	}

	n.sendEmail(user.Email, subject, body)
	_ = n.saveNotification(ctx, user.ID, subject,
		fmt.Sprintf("Your %s approval request is now %s.", req.Category, req.Status),
		"approval_update", map[string]interface{}{
			"requestId": req.ID.Hex(),
			"category":  req.Category,
			"status":    req.Status,
		})
}

func (n *ApprovalNotifier) saveNotification(ctx context.Context, userID primitive.ObjectID, title, message, notifType string, data interface{}) error {
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Data:      data,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	_, err := n.DB.Collection("notifications").InsertOne(ctx, notification)
	if err != nil {
		log.Printf("Failed to save notification for user %s: %v", userID.Hex(), err)
	}
	return err
}

func (n *ApprovalNotifier) sendEmail(to, subject, body string) {
	if to == "" {
		return
	}
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	if smtpHost == "" {
		log.Printf("SMTP_HOST not configured, skipping email to %s", to)
		return
	}
	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
	}
}
