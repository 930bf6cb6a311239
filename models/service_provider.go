package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceApproval tracks whether a provider is allowed to publish listings in
// one category. An entry is created when the provider first requests the
// category and flipped to approved by the admin review flow. The flag is
// monotonic: nothing in the approval workflow ever resets it to false.
type ServiceApproval struct {
	Category        string             `json:"category" bson:"category"`
	IsApproved      bool               `json:"isApproved" bson:"isApproved"`
	ApprovedBy      primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovalDate    *time.Time         `json:"approvalDate,omitempty" bson:"approvalDate,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	RequestedDate   time.Time          `json:"requestedDate" bson:"requestedDate"`
}

type ServiceProvider struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           primitive.ObjectID `json:"userId" bson:"userId"`
	BusinessName     string             `json:"businessName,omitempty" bson:"businessName,omitempty"`
	Email            string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone            string             `json:"phone,omitempty" bson:"phone,omitempty"`
	ContactPerson    string             `json:"contactPerson,omitempty" bson:"contactPerson,omitempty"`
	Country          string             `json:"country,omitempty" bson:"country,omitempty"`
	City             string             `json:"city,omitempty" bson:"city,omitempty"`
	Services         []string           `json:"services,omitempty" bson:"services,omitempty"`
	ServiceApprovals []ServiceApproval  `json:"serviceApprovals,omitempty" bson:"serviceApprovals,omitempty"`
	Status           string             `json:"status,omitempty" bson:"status,omitempty"`
	CreatedAt        time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt        time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ApprovalFor returns the approval entry for the given category, or nil when
// the provider has never requested it.
func (sp *ServiceProvider) ApprovalFor(category string) *ServiceApproval {
	for i := range sp.ServiceApprovals {
		if sp.ServiceApprovals[i].Category == category {
			return &sp.ServiceApprovals[i]
		}
	}
	return nil
}

// HasService reports whether the category is in the provider's services set.
func (sp *ServiceProvider) HasService(category string) bool {
	for _, s := range sp.Services {
		if s == category {
			return true
		}
	}
	return false
}
