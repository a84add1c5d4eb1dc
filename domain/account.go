package domain

import (
	"context"
	"time"
)

// ConfirmationPhrase must be typed exactly to confirm an account deletion.
const ConfirmationPhrase = "ELIMINAR MI CUENTA"

// DeletionStatus is what the deletion screens render: the exact scheduled
// purge date and the days left to change one's mind.
type DeletionStatus struct {
	PendingDeletion     bool       `json:"pending_deletion"`
	RequestedAt         *time.Time `json:"requested_at,omitempty"`
	ScheduledDeletionAt *time.Time `json:"scheduled_deletion_at,omitempty"`
	DaysRemaining       int        `json:"days_remaining"`
}

// ProfileUpdate carries the editable profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	BirthDate  *time.Time
	Bio        *string
	Address    *string
	City       *string
	Country    *string
	PostalCode *string
}

// AccountExport is the JSON payload of the user-data export.
type AccountExport struct {
	User         *User           `json:"user"`
	LoginHistory *[]LoginHistory `json:"login_history"`
	ExportedAt   time.Time       `json:"exported_at"`
}

type AccountUseCase interface {
	GetProfile(ctx context.Context, userUUID string) (*User, error)
	UpdateProfile(ctx context.Context, userUUID string, changes ProfileUpdate) (*User, error)
	ExportData(ctx context.Context, userUUID string) (*AccountExport, error)

	GetDeletionStatus(ctx context.Context, userUUID string) (*DeletionStatus, error)

	// RequestDeletion deactivates the account and starts the 30-day grace
	// period. Requires the current password and the exact confirmation
	// phrase.
	RequestDeletion(ctx context.Context, userUUID, password, confirmPhrase string) (*DeletionStatus, error)

	// RequestImmediateDeletion purges the account right away. On top of the
	// password and phrase it demands an explicit immediate flag (double
	// confirmation).
	RequestImmediateDeletion(ctx context.Context, userUUID, password, confirmPhrase string, confirmImmediate bool) error

	CancelDeletion(ctx context.Context, userUUID string) error

	// SweepExpiredAccounts purges every account whose grace period has
	// elapsed and returns a notice per purged account. Invoked by the
	// daily background job.
	SweepExpiredAccounts(ctx context.Context) ([]DeletionNotice, error)
}
