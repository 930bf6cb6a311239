package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Marketplace categories a service provider can be approved for.
const (
	CategoryTourPackages   = "tour-packages"
	CategoryExcursions     = "excursions"
	CategoryAccommodation  = "accommodation"
	CategoryTransportation = "transportation"
)

// Approval request statuses. "approved" and "rejected" are terminal;
// "resubmission-required" returns to "pending" through a provider edit.
const (
	StatusPending              = "pending"
	StatusApproved             = "approved"
	StatusRejected             = "rejected"
	StatusResubmissionRequired = "resubmission-required"
)

// Actions that move a request through its lifecycle.
const (
	ActionApprove             = "approve"
	ActionReject              = "reject"
	ActionRequestResubmission = "request-resubmission"
	ActionEdit                = "edit"
)

// Document kinds attached to a request.
const (
	DocumentTypeFile  = "document"
	DocumentTypeImage = "image"
)

var transitionMap = map[string][]string{
	ActionApprove:             {StatusPending},
	ActionReject:              {StatusPending},
	ActionRequestResubmission: {StatusPending},
	ActionEdit:                {StatusPending, StatusResubmissionRequired},
}

// ValidTransition reports whether the action is allowed while the request is
// in the given status.
func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

// ValidCategory reports whether the value is one of the four marketplace
// categories.
func ValidCategory(category string) bool {
	switch category {
	case CategoryTourPackages, CategoryExcursions, CategoryAccommodation, CategoryTransportation:
		return true
	}
	return false
}

// ValidStatus reports whether the value is a known request status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusResubmissionRequired:
		return true
	}
	return false
}

// ApprovalDocument is one uploaded document reference attached to a request.
type ApprovalDocument struct {
	Name       string    `json:"name" bson:"name" validate:"required"`
	URL        string    `json:"url" bson:"url" validate:"required"`
	Type       string    `json:"type" bson:"type"` // "document" or "image"
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// ResubmissionRecord is one entry of the append-only audit trail capturing the
// provider's edited submission after an admin asked for a resubmission.
type ResubmissionRecord struct {
	SubmittedAt time.Time          `json:"submittedAt" bson:"submittedAt"`
	Documents   []ApprovalDocument `json:"documents" bson:"documents"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
}

// CategoryApprovalRequest tracks a provider's bid to be authorized in a
// category.
type CategoryApprovalRequest struct {
	ID                   primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	ServiceProviderID    primitive.ObjectID   `json:"serviceProviderId" bson:"serviceProviderId"`
	UserID               primitive.ObjectID   `json:"userId" bson:"userId"`
	Category             string               `json:"category" bson:"category"`
	Documents            []ApprovalDocument   `json:"documents" bson:"documents"`
	CompanyName          string               `json:"companyName,omitempty" bson:"companyName,omitempty"`
	BusinessRegistration string               `json:"businessRegistration,omitempty" bson:"businessRegistration,omitempty"`
	CategoryDescription  string               `json:"categoryDescription,omitempty" bson:"categoryDescription,omitempty"`
	Experience           string               `json:"experience,omitempty" bson:"experience,omitempty"`
	Status               string               `json:"status" bson:"status"`
	ReviewedBy           primitive.ObjectID   `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt           *time.Time           `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	RejectionReason      string               `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	AdminNotes           string               `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	IdempotencyKey       string               `json:"idempotencyKey,omitempty" bson:"idempotencyKey,omitempty"`
	SubmittedAt          time.Time            `json:"submittedAt" bson:"submittedAt"`
	Resubmissions        []ResubmissionRecord `json:"resubmissions,omitempty" bson:"resubmissions,omitempty"`
	CreatedAt            time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// CreateApprovalRequest is the provider submission payload.
type CreateApprovalRequest struct {
	Category             string             `json:"category" validate:"required"`
	Documents            []ApprovalDocument `json:"documents" validate:"required,min=1,dive"`
	CompanyName          string             `json:"companyName,omitempty"`
	BusinessRegistration string             `json:"businessRegistration,omitempty"`
	CategoryDescription  string             `json:"categoryDescription,omitempty"`
	Experience           string             `json:"experience,omitempty"`
	IdempotencyKey       string             `json:"idempotencyKey,omitempty"`
}

// UpdateApprovalRequest is the provider edit payload. Omitted fields keep
// their current values.
type UpdateApprovalRequest struct {
	Documents            []ApprovalDocument `json:"documents,omitempty" validate:"omitempty,min=1,dive"`
	CompanyName          string             `json:"companyName,omitempty"`
	BusinessRegistration string             `json:"businessRegistration,omitempty"`
	CategoryDescription  string             `json:"categoryDescription,omitempty"`
	Experience           string             `json:"experience,omitempty"`
	Notes                string             `json:"notes,omitempty"`
}

// ReviewDecisionRequest is the admin payload for approve, reject and
// request-resubmission endpoints.
type ReviewDecisionRequest struct {
	RejectionReason string `json:"rejectionReason,omitempty"`
	AdminNotes      string `json:"adminNotes,omitempty"`
}

// ReviewUpdate carries the fields an admin transition writes to a request.
type ReviewUpdate struct {
	Status          string
	ReviewedBy      primitive.ObjectID
	ReviewedAt      time.Time
	RejectionReason string
	AdminNotes      string
}

// ApprovalRequestFilter narrows admin listings. Empty fields match everything.
type ApprovalRequestFilter struct {
	Status   string
	Category string
}

// ReviewerInfo is the reviewer identity attached to listed requests.
type ReviewerInfo struct {
	ID       primitive.ObjectID `json:"id"`
	FullName string             `json:"fullName"`
	Email    string             `json:"email"`
}

// CategoryApprovalRequestDetail is a request with its reviewer populated.
type CategoryApprovalRequestDetail struct {
	CategoryApprovalRequest
	Reviewer *ReviewerInfo `json:"reviewer,omitempty"`
}

// BuildResubmissionSnapshot captures the provider's edited submission made in
// response to a resubmission-required verdict. When the edit carries no
// replacement documents the current ones are snapshotted instead, so the audit
// trail always records what the provider resubmitted.
func BuildResubmissionSnapshot(current *CategoryApprovalRequest, edit *UpdateApprovalRequest, submittedAt time.Time) ResubmissionRecord {
	docs := edit.Documents
	if len(docs) == 0 {
		docs = current.Documents
	}
	snapshot := ResubmissionRecord{
		SubmittedAt: submittedAt,
		Documents:   make([]ApprovalDocument, len(docs)),
		Notes:       edit.Notes,
	}
	copy(snapshot.Documents, docs)
	return snapshot
}
