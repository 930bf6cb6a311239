// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles
const (
	RolePending = "pending"
	RoleUser    = "user"
	RoleAgent   = "agent"
	RoleAdmin   = "admin"
)

// Account types
const (
	UserTypeTraveler        = "traveler"
	UserTypeServiceProvider = "service-provider"
)

// User model
type User struct {
	ID                primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Email             string              `json:"email" bson:"email"`
	Password          string              `json:"password,omitempty" bson:"password"`
	FullName          string              `json:"fullName" bson:"fullName"`
	Role              string              `json:"role" bson:"role"`         // "pending", "user", "agent", "admin"
	UserType          string              `json:"userType" bson:"userType"` // "traveler" or "service-provider"
	Phone             string              `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive          bool                `json:"isActive" bson:"isActive"`
	ServiceProviderID *primitive.ObjectID `json:"serviceProviderId,omitempty" bson:"serviceProviderId,omitempty"`
	CreatedAt         time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
