package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Travelora/travelora_backend/models"
)

type CategoryApprovalRepository struct {
	collection *mongo.Collection
}

func NewCategoryApprovalRepository(db *mongo.Database) *CategoryApprovalRepository {
	return &CategoryApprovalRepository{collection: db.Collection("categoryApprovalRequests")}
}

func (r *CategoryApprovalRepository) Insert(ctx context.Context, req *models.CategoryApprovalRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		// The partial unique index on (serviceProviderId, category) with
		// status == pending backstops the pre-insert existence check.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *CategoryApprovalRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CategoryApprovalRequest, error) {
	var req models.CategoryApprovalRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *CategoryApprovalRepository) FindByProvider(ctx context.Context, providerID primitive.ObjectID) ([]models.CategoryApprovalRequest, error) {
	return r.findAll(ctx, bson.M{"serviceProviderId": providerID})
}

func (r *CategoryApprovalRepository) Find(ctx context.Context, filter models.ApprovalRequestFilter) ([]models.CategoryApprovalRequest, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	return r.findAll(ctx, query)
}

func (r *CategoryApprovalRepository) findAll(ctx context.Context, query bson.M) ([]models.CategoryApprovalRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.CategoryApprovalRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *CategoryApprovalRepository) HasPending(ctx context.Context, providerID primitive.ObjectID, category string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"serviceProviderId": providerID,
		"category":          category,
		"status":            models.StatusPending,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryApprovalRepository) FindByIdempotencyKey(ctx context.Context, providerID primitive.ObjectID, key string) (*models.CategoryApprovalRequest, error) {
	var req models.CategoryApprovalRequest
	err := r.collection.FindOne(ctx, bson.M{
		"serviceProviderId": providerID,
		"idempotencyKey":    key,
	}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ApplyReview moves a request out of fromStatus. The status lives in the
// update filter so the second of two racing admins matches nothing instead of
// overwriting the first decision.
func (r *CategoryApprovalRepository) ApplyReview(ctx context.Context, id primitive.ObjectID, fromStatus string, upd models.ReviewUpdate) (bool, error) {
	set := bson.M{
		"status":     upd.Status,
		"reviewedBy": upd.ReviewedBy,
		"reviewedAt": upd.ReviewedAt,
		"updatedAt":  upd.ReviewedAt,
	}
	if upd.RejectionReason != "" {
		set["rejectionReason"] = upd.RejectionReason
	}
	if upd.AdminNotes != "" {
		set["adminNotes"] = upd.AdminNotes
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": fromStatus}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ApplyEdit applies a provider edit, returns the request to pending and, when
// a snapshot is supplied, appends it to the resubmission audit trail. Like
// ApplyReview it is conditional on the current status.
func (r *CategoryApprovalRepository) ApplyEdit(ctx context.Context, id primitive.ObjectID, fromStatus string, edit models.UpdateApprovalRequest, snapshot *models.ResubmissionRecord, now time.Time) (bool, error) {
	set := bson.M{
		"status":    models.StatusPending,
		"updatedAt": now,
	}
	if len(edit.Documents) > 0 {
		set["documents"] = edit.Documents
	}
	if edit.CompanyName != "" {
		set["companyName"] = edit.CompanyName
	}
	if edit.BusinessRegistration != "" {
		set["businessRegistration"] = edit.BusinessRegistration
	}
	if edit.CategoryDescription != "" {
		set["categoryDescription"] = edit.CategoryDescription
	}
	if edit.Experience != "" {
		set["experience"] = edit.Experience
	}

	update := bson.M{"$set": set}
	if snapshot != nil {
		// A resubmission is a fresh submission for review purposes.
		set["submittedAt"] = now
		update["$push"] = bson.M{"resubmissions": snapshot}
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": fromStatus}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a request outright. Intentionally no cleanup of the provider
// profile's approval entry.
func (r *CategoryApprovalRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
