// controllers/category_approval_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Travelora/travelora_backend/middleware"
	"github.com/Travelora/travelora_backend/models"
	"github.com/Travelora/travelora_backend/services"
)

// CategoryApprovalController exposes the approval workflow over HTTP.
type CategoryApprovalController struct {
	Service *services.CategoryApprovalService
}

func NewCategoryApprovalController(service *services.CategoryApprovalService) *CategoryApprovalController {
	return &CategoryApprovalController{Service: service}
}

// CreateRequest handles a provider submitting documents for a category.
func (cc *CategoryApprovalController) CreateRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var input models.CreateApprovalRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	req, err := cc.Service.CreateRequest(ctx, claims.UserID, &input)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Approval request submitted successfully",
		Data:    req,
	})
}

// GetMyRequests lists the authenticated provider's requests, newest first.
func (cc *CategoryApprovalController) GetMyRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	requests, err := cc.Service.GetOwnRequests(ctx, claims.UserID)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval requests retrieved successfully",
		Data:    requests,
	})
}

// GetRequest returns a single request for its submitter, the profile owner or
// an admin.
func (cc *CategoryApprovalController) GetRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	detail, err := cc.Service.GetRequestByID(ctx, c.Param("id"), claims.UserID)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval request retrieved successfully",
		Data:    detail,
	})
}

// UpdateRequest handles a provider editing a pending or resubmission-required
// request.
func (cc *CategoryApprovalController) UpdateRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var input models.UpdateApprovalRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	req, err := cc.Service.UpdateRequest(ctx, claims.UserID, c.Param("id"), &input)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval request updated successfully",
		Data:    req,
	})
}

// GetAllRequests lists requests for admins with optional status and category
// query filters.
func (cc *CategoryApprovalController) GetAllRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := models.ApprovalRequestFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	}

	requests, err := cc.Service.GetAllRequests(ctx, filter)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval requests retrieved successfully",
		Data:    requests,
	})
}

// GetPendingRequests lists the requests awaiting review.
func (cc *CategoryApprovalController) GetPendingRequests(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	requests, err := cc.Service.GetPendingRequests(ctx)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pending approval requests retrieved successfully",
		Data:    requests,
	})
}

// ApproveRequest handles an admin approving a pending request.
func (cc *CategoryApprovalController) ApproveRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var input models.ReviewDecisionRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}

	req, err := cc.Service.Approve(ctx, claims.UserID, c.Param("id"), input.AdminNotes)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval request approved successfully",
		Data:    req,
	})
}

// RejectRequest handles an admin rejecting a pending request. A rejection
// reason is mandatory.
func (cc *CategoryApprovalController) RejectRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var input models.ReviewDecisionRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}

	req, err := cc.Service.Reject(ctx, claims.UserID, c.Param("id"), input.RejectionReason, input.AdminNotes)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval request rejected",
		Data:    req,
	})
}

// RequestResubmission handles an admin sending a pending request back to the
// provider for amendments.
func (cc *CategoryApprovalController) RequestResubmission(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var input models.ReviewDecisionRequest
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request payload",
		})
	}

	req, err := cc.Service.RequestResubmission(ctx, claims.UserID, c.Param("id"), input.RejectionReason, input.AdminNotes)
	if err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Resubmission requested",
		Data:    req,
	})
}

// DeleteRequest removes a request outright. Admin only.
func (cc *CategoryApprovalController) DeleteRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := cc.Service.DeleteRequest(ctx, c.Param("id")); err != nil {
		return cc.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Approval request deleted successfully",
	})
}

// fail maps service errors onto HTTP responses. Unrecognized errors are
// logged and reported as a generic 500.
func (cc *CategoryApprovalController) fail(c echo.Context, err error) error {
	switch {
	case services.IsValidationError(err),
		errors.Is(err, services.ErrDuplicateRequest),
		errors.Is(err, services.ErrInvalidStateTransition):
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrRequestNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrAccessDenied):
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You do not have permission to access this approval request",
		})
	default:
		log.Printf("category approval error: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
