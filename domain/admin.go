package domain

import "context"

type AdminUseCase interface {
	ListUsers(ctx context.Context) (*[]User, error)
	GetUser(ctx context.Context, uuid string) (*User, error)
	AssignRole(ctx context.Context, uuid, role string) error
	SetActive(ctx context.Context, uuid string, active bool) error
	DeleteUser(ctx context.Context, uuid string) error
	GetLoginHistory(ctx context.Context, uuid string, limit int) (*[]LoginHistory, error)
}
