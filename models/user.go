package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleSalonOwner Role = "salon_owner"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSalonOwner, RoleAdmin:
		return true
	}
	return false
}

// User is the read-only view of a platform account.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phoneNumber" json:"phoneNumber"`
	Role        Role      `bson:"role" json:"role"`
	FCMToken    string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UserSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, PhoneNumber: u.PhoneNumber}
}

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
