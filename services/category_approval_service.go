// services/category_approval_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Travelora/travelora_backend/models"
	"github.com/Travelora/travelora_backend/repositories"
	"github.com/Travelora/travelora_backend/utils"
)

// UserStore resolves account identities.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ServiceProviderStore is the provider-profile store the workflow keeps in
// sync with approval decisions.
type ServiceProviderStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceProvider, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.ServiceProvider, error)
	EnsureCategory(ctx context.Context, id primitive.ObjectID, category string, requestedAt time.Time) error
	MarkCategoryApproved(ctx context.Context, id primitive.ObjectID, category string, approvedBy primitive.ObjectID, approvedAt time.Time) error
}

// ApprovalRequestStore persists category approval requests.
type ApprovalRequestStore interface {
	Insert(ctx context.Context, req *models.CategoryApprovalRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CategoryApprovalRequest, error)
	FindByProvider(ctx context.Context, providerID primitive.ObjectID) ([]models.CategoryApprovalRequest, error)
	Find(ctx context.Context, filter models.ApprovalRequestFilter) ([]models.CategoryApprovalRequest, error)
	HasPending(ctx context.Context, providerID primitive.ObjectID, category string) (bool, error)
	FindByIdempotencyKey(ctx context.Context, providerID primitive.ObjectID, key string) (*models.CategoryApprovalRequest, error)
	ApplyReview(ctx context.Context, id primitive.ObjectID, fromStatus string, upd models.ReviewUpdate) (bool, error)
	ApplyEdit(ctx context.Context, id primitive.ObjectID, fromStatus string, edit models.UpdateApprovalRequest, snapshot *models.ResubmissionRecord, now time.Time) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Notifier dispatches emails and in-app notifications on workflow events.
// Implementations must not fail the transition: delivery problems are theirs
// to log.
type Notifier interface {
	RequestSubmitted(ctx context.Context, user *models.User, req *models.CategoryApprovalRequest)
	StatusChanged(ctx context.Context, req *models.CategoryApprovalRequest)
}

// CategoryApprovalService enforces the category-approval state machine across
// the identity, provider-profile and approval-request stores.
type CategoryApprovalService struct {
	users    UserStore
	profiles ServiceProviderStore
	requests ApprovalRequestStore
	notifier Notifier
	now      func() time.Time
}

func NewCategoryApprovalService(users UserStore, profiles ServiceProviderStore, requests ApprovalRequestStore, notifier Notifier) *CategoryApprovalService {
	return &CategoryApprovalService{
		users:    users,
		profiles: profiles,
		requests: requests,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateRequest submits a new approval request for the account's provider
// profile. At most one request per (profile, category) may be pending; the
// profile's services set and shadow approval entry are synchronized as a side
// effect.
func (s *CategoryApprovalService) CreateRequest(ctx context.Context, accountID string, input *models.CreateApprovalRequest) (*models.CategoryApprovalRequest, error) {
	userID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, NewValidationError("invalid account id")
	}
	if !models.ValidCategory(input.Category) {
		return nil, NewValidationError(fmt.Sprintf("invalid category %q", input.Category))
	}
	if len(input.Documents) == 0 {
		return nil, NewValidationError("at least one document is required")
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	// Replay of a retried submission returns the already-created request.
	if input.IdempotencyKey != "" {
		existing, err := s.requests.FindByIdempotencyKey(ctx, profile.ID, input.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	pending, err := s.requests.HasPending(ctx, profile.ID, input.Category)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	now := s.now()
	docs := make([]models.ApprovalDocument, len(input.Documents))
	copy(docs, input.Documents)
	for i := range docs {
		if docs[i].Type == "" {
			docs[i].Type = models.DocumentTypeFile
		}
		if docs[i].UploadedAt.IsZero() {
			docs[i].UploadedAt = now
		}
	}

	key := input.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	req := &models.CategoryApprovalRequest{
		ServiceProviderID:    profile.ID,
		UserID:               userID,
		Category:             input.Category,
		Documents:            docs,
		CompanyName:          input.CompanyName,
		BusinessRegistration: input.BusinessRegistration,
		CategoryDescription:  input.CategoryDescription,
		Experience:           input.Experience,
		Status:               models.StatusPending,
		IdempotencyKey:       key,
		SubmittedAt:          now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.requests.Insert(ctx, req); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	if err := s.profiles.EnsureCategory(ctx, profile.ID, input.Category, now); err != nil {
		return nil, err
	}

	if user, uerr := s.users.FindByID(ctx, userID); uerr == nil {
		s.notifier.RequestSubmitted(ctx, user, req)
	}
	return req, nil
}

// GetOwnRequests returns all of the account's requests, newest first, with
// reviewer identity populated.
func (s *CategoryApprovalService) GetOwnRequests(ctx context.Context, accountID string) ([]models.CategoryApprovalRequestDetail, error) {
	userID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, NewValidationError("invalid account id")
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	requests, err := s.requests.FindByProvider(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return s.withReviewers(ctx, requests), nil
}

// GetRequestByID loads a request for the submitting account, the account that
// currently owns the referenced provider profile, or an admin. Everyone else
// is denied. Identifiers are compared as normalized hex strings because the
// submitting account and the profile owner can diverge over time.
func (s *CategoryApprovalService) GetRequestByID(ctx context.Context, requestID, accountID string) (*models.CategoryApprovalRequestDetail, error) {
	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, NewValidationError("invalid request id")
	}

	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	requester := utils.IDHex(accountID)
	allowed := utils.IDHex(req.UserID) == requester
	if !allowed {
		if profile, perr := s.profiles.FindByID(ctx, req.ServiceProviderID); perr == nil {
			allowed = utils.IDHex(profile.UserID) == requester
		}
	}
	if !allowed {
		if userID, perr := primitive.ObjectIDFromHex(accountID); perr == nil {
			if user, uerr := s.users.FindByID(ctx, userID); uerr == nil {
				allowed = user.Role == models.RoleAdmin
			}
		}
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	detail := models.CategoryApprovalRequestDetail{CategoryApprovalRequest: *req}
	detail.Reviewer = s.reviewerInfo(ctx, req.ReviewedBy, map[primitive.ObjectID]*models.ReviewerInfo{})
	return &detail, nil
}

// GetAllRequests lists requests for admins, optionally filtered by status and
// category, newest first.
func (s *CategoryApprovalService) GetAllRequests(ctx context.Context, filter models.ApprovalRequestFilter) ([]models.CategoryApprovalRequestDetail, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, NewValidationError(fmt.Sprintf("invalid status %q", filter.Status))
	}
	if filter.Category != "" && !models.ValidCategory(filter.Category) {
		return nil, NewValidationError(fmt.Sprintf("invalid category %q", filter.Category))
	}

	requests, err := s.requests.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.withReviewers(ctx, requests), nil
}

// GetPendingRequests is the admin convenience listing of pending requests.
func (s *CategoryApprovalService) GetPendingRequests(ctx context.Context) ([]models.CategoryApprovalRequestDetail, error) {
	return s.GetAllRequests(ctx, models.ApprovalRequestFilter{Status: models.StatusPending})
}

// Approve moves a pending request to approved and flips the provider
// profile's approval flag for the category. The flag is never reset by later
// cycles.
func (s *CategoryApprovalService) Approve(ctx context.Context, adminID, requestID, adminNotes string) (*models.CategoryApprovalRequest, error) {
	return s.review(ctx, adminID, requestID, models.ReviewUpdate{
		Status:     models.StatusApproved,
		AdminNotes: adminNotes,
	}, models.ActionApprove)
}

// Reject moves a pending request to rejected. The profile flag is left
// untouched.
func (s *CategoryApprovalService) Reject(ctx context.Context, adminID, requestID, rejectionReason, adminNotes string) (*models.CategoryApprovalRequest, error) {
	if strings.TrimSpace(rejectionReason) == "" {
		return nil, NewValidationError("rejection reason is required")
	}
	return s.review(ctx, adminID, requestID, models.ReviewUpdate{
		Status:          models.StatusRejected,
		RejectionReason: rejectionReason,
		AdminNotes:      adminNotes,
	}, models.ActionReject)
}

// RequestResubmission asks the provider to amend and resubmit a pending
// request.
func (s *CategoryApprovalService) RequestResubmission(ctx context.Context, adminID, requestID, rejectionReason, adminNotes string) (*models.CategoryApprovalRequest, error) {
	if strings.TrimSpace(rejectionReason) == "" {
		return nil, NewValidationError("rejection reason is required")
	}
	return s.review(ctx, adminID, requestID, models.ReviewUpdate{
		Status:          models.StatusResubmissionRequired,
		RejectionReason: rejectionReason,
		AdminNotes:      adminNotes,
	}, models.ActionRequestResubmission)
}

func (s *CategoryApprovalService) review(ctx context.Context, adminID, requestID string, upd models.ReviewUpdate, action string) (*models.CategoryApprovalRequest, error) {
	reviewerID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return nil, NewValidationError("invalid reviewer id")
	}
	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, NewValidationError("invalid request id")
	}

	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	now := s.now()
	upd.ReviewedBy = reviewerID
	upd.ReviewedAt = now

	// Conditional on status == pending: a concurrent decision already landed
	// when this matches nothing.
	matched, err := s.requests.ApplyReview(ctx, id, models.StatusPending, upd)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("%w: can only %s pending requests", ErrInvalidStateTransition, action)
	}

	if upd.Status == models.StatusApproved {
		if err := s.profiles.MarkCategoryApproved(ctx, req.ServiceProviderID, req.Category, reviewerID, now); err != nil {
			return nil, err
		}
	}

	req.Status = upd.Status
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now
	req.RejectionReason = upd.RejectionReason
	if upd.AdminNotes != "" {
		req.AdminNotes = upd.AdminNotes
	}
	req.UpdatedAt = now

	s.notifier.StatusChanged(ctx, req)
	return req, nil
}

// UpdateRequest applies a provider edit. Editing a pending request is a plain
// field update; editing a resubmission-required request returns it to pending
// and appends a snapshot of the resubmission to the audit trail. The admin's
// rejection reason is retained as history either way.
func (s *CategoryApprovalService) UpdateRequest(ctx context.Context, accountID, requestID string, edit *models.UpdateApprovalRequest) (*models.CategoryApprovalRequest, error) {
	userID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, NewValidationError("invalid account id")
	}
	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, NewValidationError("invalid request id")
	}

	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	requester := utils.IDHex(userID)
	allowed := utils.IDHex(req.UserID) == requester
	if !allowed {
		if profile, perr := s.profiles.FindByID(ctx, req.ServiceProviderID); perr == nil {
			allowed = utils.IDHex(profile.UserID) == requester
		}
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	if !models.ValidTransition(models.ActionEdit, req.Status) {
		return nil, fmt.Errorf("%w: can only edit pending or resubmission-required requests", ErrInvalidStateTransition)
	}

	now := s.now()
	var snapshot *models.ResubmissionRecord
	if req.Status == models.StatusResubmissionRequired {
		snap := models.BuildResubmissionSnapshot(req, edit, now)
		snapshot = &snap
	}

	matched, err := s.requests.ApplyEdit(ctx, id, req.Status, *edit, snapshot, now)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("%w: request status changed, reload and retry", ErrInvalidStateTransition)
	}

	updated, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRequest removes a request outright, bypassing the state machine. The
// provider profile's approval entry is deliberately left alone.
func (s *CategoryApprovalService) DeleteRequest(ctx context.Context, requestID string) error {
	id, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return NewValidationError("invalid request id")
	}
	deleted, err := s.requests.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRequestNotFound
	}
	return nil
}

func (s *CategoryApprovalService) withReviewers(ctx context.Context, requests []models.CategoryApprovalRequest) []models.CategoryApprovalRequestDetail {
	cache := map[primitive.ObjectID]*models.ReviewerInfo{}
	details := make([]models.CategoryApprovalRequestDetail, len(requests))
	for i := range requests {
		details[i] = models.CategoryApprovalRequestDetail{CategoryApprovalRequest: requests[i]}
		details[i].Reviewer = s.reviewerInfo(ctx, requests[i].ReviewedBy, cache)
	}
	return details
}

func (s *CategoryApprovalService) reviewerInfo(ctx context.Context, reviewedBy primitive.ObjectID, cache map[primitive.ObjectID]*models.ReviewerInfo) *models.ReviewerInfo {
	if reviewedBy.IsZero() {
		return nil
	}
	if info, ok := cache[reviewedBy]; ok {
		return info
	}
	user, err := s.users.FindByID(ctx, reviewedBy)
	if err != nil {
		cache[reviewedBy] = nil
		return nil
	}
	info := &models.ReviewerInfo{ID: user.ID, FullName: user.FullName, Email: user.Email}
	cache[reviewedBy] = info
	return info
}
