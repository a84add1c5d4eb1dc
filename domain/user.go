package domain

import (
	"context"
	"time"
)

// User roles. Stored as a plain column; seeding happens on boot.
const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
	RoleUser      = "USER"
	RoleGuest     = "GUEST"
)

type User struct {
	UUID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"uuid"`
	Username  string `gorm:"unique;not null" json:"username"` // max 150
	Email     string `gorm:"unique;not null" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"not null;default:USER" json:"role"`

	Phone      string     `json:"phone,omitempty"` // max 17, +999999999 format
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Bio        string     `gorm:"size:500" json:"bio,omitempty"`
	Address    string     `gorm:"size:255" json:"address,omitempty"`
	City       string     `gorm:"size:100" json:"city,omitempty"`
	Country    string     `gorm:"size:100" json:"country,omitempty"`
	PostalCode string     `gorm:"size:20" json:"postal_code,omitempty"`

	EmailVerified bool   `gorm:"not null;default:false" json:"email_verified"`
	IsActive      bool   `gorm:"not null;default:true" json:"is_active"`
	LastLoginIP   string `json:"-"`

	// Deletion grace period columns. Set if and only if the account is
	// pending deletion; reads and writes go through Lifecycle().
	PendingDeletion     bool       `gorm:"not null;default:false" json:"pending_deletion"`
	DeletionRequestedAt *time.Time `json:"deletion_requested_at,omitempty"`
	ScheduledDeletionAt *time.Time `json:"scheduled_deletion_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Lifecycle reads the deletion state out of the nullable columns. A row that
// still exists is never PhaseDeleted; purged accounts have no row at all.
func (u *User) Lifecycle() Lifecycle {
	if u.PendingDeletion && u.DeletionRequestedAt != nil && u.ScheduledDeletionAt != nil {
		return Lifecycle{
			Phase:       PhasePendingDeletion,
			RequestedAt: *u.DeletionRequestedAt,
			PurgeAt:     *u.ScheduledDeletionAt,
		}
	}
	return ActiveLifecycle()
}

// SetLifecycle writes a transition result back to the columns, keeping
// IsActive in step: an account pending deletion cannot log in through the
// normal credential path.
func (u *User) SetLifecycle(l Lifecycle) {
	switch l.Phase {
	case PhasePendingDeletion:
		requested, purge := l.RequestedAt, l.PurgeAt
		u.PendingDeletion = true
		u.DeletionRequestedAt = &requested
		u.ScheduledDeletionAt = &purge
		u.IsActive = false
	default:
		u.PendingDeletion = false
		u.DeletionRequestedAt = nil
		u.ScheduledDeletionAt = nil
		u.IsActive = l.Phase == PhaseActive
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// FullNameOrUsername returns "First Last" or falls back to the username.
func (u *User) FullNameOrUsername() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// LoginHistory records every login attempt, successful or not.
type LoginHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserUUID  string    `gorm:"type:uuid;index;not null" json:"user_uuid"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	Success   bool      `gorm:"not null;default:true" json:"success"`
	LoginTime time.Time `gorm:"autoCreateTime" json:"login_time"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUUID(ctx context.Context, uuid string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetAllUsers(ctx context.Context) (*[]User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, uuid string) error

	// GetUsersDueForDeletion returns accounts in PendingDeletion whose
	// scheduled purge date is at or before now.
	GetUsersDueForDeletion(ctx context.Context, now time.Time) (*[]User, error)

	RecordLogin(ctx context.Context, entry *LoginHistory) error
	GetLoginHistory(ctx context.Context, userUUID string, limit int) (*[]LoginHistory, error)
}
