package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

var ErrUnknownRole = errors.New("unknown role")

type adminService struct {
	userRepo domain.UserRepository
}

func NewAdminService(userRepo domain.UserRepository) domain.AdminUseCase {
	return &adminService{
		userRepo: userRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context) (*[]domain.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *adminService) GetUser(ctx context.Context, uuid string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, uuid)
}

func (s *adminService) AssignRole(ctx context.Context, uuid, role string) error {
	switch role {
	case domain.RoleAdmin, domain.RoleModerator, domain.RoleUser, domain.RoleGuest:
	default:
		return ErrUnknownRole
	}

	user, err := s.userRepo.GetUserByUUID(ctx, uuid)
	if err != nil {
		return err
	}

	user.Role = role
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}

	log.Info().Str("user", uuid).Str("role", role).Msg("role assigned")
	return nil
}

func (s *adminService) SetActive(ctx context.Context, uuid string, active bool) error {
	user, err := s.userRepo.GetUserByUUID(ctx, uuid)
	if err != nil {
		return err
	}

	// Accounts pending deletion are managed through the lifecycle flow,
	// not the admin toggle.
	if user.Lifecycle().Phase == domain.PhasePendingDeletion {
		return domain.ErrNotActive
	}

	user.IsActive = active
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *adminService) DeleteUser(ctx context.Context, uuid string) error {
	return s.userRepo.DeleteUser(ctx, uuid)
}

func (s *adminService) GetLoginHistory(ctx context.Context, uuid string, limit int) (*[]domain.LoginHistory, error) {
	return s.userRepo.GetLoginHistory(ctx, uuid, limit)
}
