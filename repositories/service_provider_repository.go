package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Travelora/travelora_backend/models"
)

type ServiceProviderRepository struct {
	collection *mongo.Collection
}

func NewServiceProviderRepository(db *mongo.Database) *ServiceProviderRepository {
	return &ServiceProviderRepository{collection: db.Collection("serviceProviders")}
}

func (r *ServiceProviderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &provider, nil
}

func (r *ServiceProviderRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// EnsureCategory adds the category to the provider's services set and appends
// a shadow approval entry when none exists yet. Both writes are idempotent, so
// a resubmission after a rejection does not duplicate the entry.
func (r *ServiceProviderRepository) EnsureCategory(ctx context.Context, id primitive.ObjectID, category string, requestedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"services": category},
		"$set":      bson.M{"updatedAt": requestedAt},
	})
	if err != nil {
		return err
	}

	// The category filter keeps the append conditional: no match, no push.
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "serviceApprovals.category": bson.M{"$ne": category}},
		bson.M{"$push": bson.M{"serviceApprovals": models.ServiceApproval{
			Category:      category,
			IsApproved:    false,
			RequestedDate: requestedAt,
		}}},
	)
	return err
}

// MarkCategoryApproved flips the approval entry for the category to approved
// and records who approved it and when.
func (r *ServiceProviderRepository) MarkCategoryApproved(ctx context.Context, id primitive.ObjectID, category string, approvedBy primitive.ObjectID, approvedAt time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "serviceApprovals.category": category},
		bson.M{"$set": bson.M{
			"serviceApprovals.$.isApproved":   true,
			"serviceApprovals.$.approvedBy":   approvedBy,
			"serviceApprovals.$.approvalDate": approvedAt,
			"updatedAt":                       approvedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No entry yet for this category (the shadow entry was removed out of
	// band); append one already marked approved.
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"services": category},
		"$push": bson.M{"serviceApprovals": models.ServiceApproval{
			Category:      category,
			IsApproved:    true,
			ApprovedBy:    approvedBy,
			ApprovalDate:  &approvedAt,
			RequestedDate: approvedAt,
		}},
	})
	return err
}
