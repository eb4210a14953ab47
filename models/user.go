package models

import (
	"time"
)

type UserRole string

const (
	RoleReader UserRole = "reader"
	RoleAdmin  UserRole = "admin"
)

// User mirrors the identity table owned by the external auth provider.
// Deleting a user cascades to every row it owns.
type User struct {
	ID            string       `json:"id" gorm:"primaryKey;type:text"`
	Name          string       `json:"name" gorm:"not null"`
	Email         string       `json:"email" gorm:"uniqueIndex;not null"`
	EmailVerified bool         `json:"emailVerified" gorm:"column:email_verified;default:false;not null"`
	Image         *string      `json:"image"`
	Profile       *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (User) TableName() string { return "user" }

// Account holds provider credentials for a user. Only the credential
// provider stores a password hash.
type Account struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	AccountID  string    `json:"accountId" gorm:"column:account_id;not null"`
	ProviderID string    `json:"providerId" gorm:"column:provider_id;not null"`
	UserID     string    `json:"userId" gorm:"column:user_id;not null"`
	Password   *string   `json:"-"`
	Scope      *string   `json:"scope"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Account) TableName() string { return "account" }

type UserProfile struct {
	ID          int        `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"userId" gorm:"column:user_id;uniqueIndex;not null"`
	FirstName   *string    `json:"firstName" gorm:"column:first_name"`
	LastName    *string    `json:"lastName" gorm:"column:last_name"`
	Bio         *string    `json:"bio"`
	Avatar      *string    `json:"avatar"`
	Website     *string    `json:"website"`
	Location    *string    `json:"location"`
	DateOfBirth *time.Time `json:"dateOfBirth" gorm:"column:date_of_birth"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Follower is a directed edge: FollowerID follows FollowingID.
type Follower struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"followerId" gorm:"column:follower_id;not null"`
	FollowingID string    `json:"followingId" gorm:"column:following_id;not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Follower) TableName() string { return "followers" }
