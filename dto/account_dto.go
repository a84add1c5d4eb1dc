package dto

import "time"

type UpdateProfileRequest struct {
	FirstName  *string    `json:"first_name" binding:"omitempty,max=100"`
	LastName   *string    `json:"last_name" binding:"omitempty,max=100"`
	Phone      *string    `json:"phone" binding:"omitempty,phone"`
	BirthDate  *time.Time `json:"birth_date"`
	Bio        *string    `json:"bio" binding:"omitempty,max=500"`
	Address    *string    `json:"address" binding:"omitempty,max=255"`
	City       *string    `json:"city" binding:"omitempty,max=100"`
	Country    *string    `json:"country" binding:"omitempty,max=100"`
	PostalCode *string    `json:"postal_code" binding:"omitempty,max=20"`
}

// DeleteAccountRequest covers both deletion flavors. Immediate deletion
// additionally requires ConfirmImmediate (double confirmation).
type DeleteAccountRequest struct {
	Password         string `json:"password" binding:"required"`
	ConfirmText      string `json:"confirm_text" binding:"required,confirm_phrase"`
	ConfirmImmediate bool   `json:"confirm_immediate"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN MODERATOR USER GUEST"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
