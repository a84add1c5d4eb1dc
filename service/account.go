package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

var (
	ErrWrongConfirmPhrase    = errors.New("confirmation phrase does not match")
	ErrImmediateNotConfirmed = errors.New("immediate deletion not confirmed")
)

type accountService struct {
	userRepo domain.UserRepository
	notifier domain.Notifier
	clock    domain.Clock
}

func NewAccountService(userRepo domain.UserRepository, notifier domain.Notifier, clock domain.Clock) domain.AccountUseCase {
	return &accountService{
		userRepo: userRepo,
		notifier: notifier,
		clock:    clock,
	}
}

func (s *accountService) GetProfile(ctx context.Context, userUUID string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, userUUID)
}

func (s *accountService) UpdateProfile(ctx context.Context, userUUID string, changes domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	if changes.FirstName != nil {
		user.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		user.LastName = *changes.LastName
	}
	if changes.Phone != nil {
		user.Phone = *changes.Phone
	}
	if changes.BirthDate != nil {
		user.BirthDate = changes.BirthDate
	}
	if changes.Bio != nil {
		user.Bio = *changes.Bio
	}
	if changes.Address != nil {
		user.Address = *changes.Address
	}
	if changes.City != nil {
		user.City = *changes.City
	}
	if changes.Country != nil {
		user.Country = *changes.Country
	}
	if changes.PostalCode != nil {
		user.PostalCode = *changes.PostalCode
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) ExportData(ctx context.Context, userUUID string) (*domain.AccountExport, error) {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	history, err := s.userRepo.GetLoginHistory(ctx, userUUID, 100)
	if err != nil {
		return nil, err
	}

	return &domain.AccountExport{
		User:         user,
		LoginHistory: history,
		ExportedAt:   s.clock.Now(),
	}, nil
}

func (s *accountService) GetDeletionStatus(ctx context.Context, userUUID string) (*domain.DeletionStatus, error) {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	return s.statusFor(user), nil
}

func (s *accountService) statusFor(user *domain.User) *domain.DeletionStatus {
	lifecycle := user.Lifecycle()
	if lifecycle.Phase != domain.PhasePendingDeletion {
		return &domain.DeletionStatus{}
	}

	days := int(lifecycle.PurgeAt.Sub(s.clock.Now()).Hours() / 24)
	if days < 0 {
		days = 0
	}

	requested, purge := lifecycle.RequestedAt, lifecycle.PurgeAt
	return &domain.DeletionStatus{
		PendingDeletion:     true,
		RequestedAt:         &requested,
		ScheduledDeletionAt: &purge,
		DaysRemaining:       days,
	}
}

// RequestDeletion starts the 30-day grace period. The caller must supply the
// current password and type the confirmation phrase exactly.
func (s *accountService) RequestDeletion(ctx context.Context, userUUID, password, confirmPhrase string) (*domain.DeletionStatus, error) {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrPasswordMismatch
	}
	if confirmPhrase != domain.ConfirmationPhrase {
		return nil, ErrWrongConfirmPhrase
	}

	lifecycle, err := user.Lifecycle().RequestDeletion(s.clock.Now())
	if err != nil {
		return nil, err
	}
	user.SetLifecycle(lifecycle)

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	// Best-effort: the deactivation already happened.
	if err := s.notifier.Send(ctx, domain.Notice{
		Kind:     domain.NoticeDeactivation,
		To:       user.Email,
		Username: user.Username,
		Data: map[string]string{
			"scheduled_date": lifecycle.PurgeAt.Format("02/01/2006"),
		},
	}); err != nil {
		log.Warn().Err(err).Str("user", user.UUID).Msg("deactivation notice not delivered")
	}

	return s.statusFor(user), nil
}

func (s *accountService) CancelDeletion(ctx context.Context, userUUID string) error {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return err
	}

	lifecycle, err := user.Lifecycle().CancelDeletion()
	if err != nil {
		return err
	}
	user.SetLifecycle(lifecycle)

	return s.userRepo.UpdateUser(ctx, user)
}

// RequestImmediateDeletion purges without a grace period. All three
// confirmations are verified here: password, exact phrase and the explicit
// immediate flag.
func (s *accountService) RequestImmediateDeletion(ctx context.Context, userUUID, password, confirmPhrase string, confirmImmediate bool) error {
	user, err := s.userRepo.GetUserByUUID(ctx, userUUID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return ErrPasswordMismatch
	}
	if confirmPhrase != domain.ConfirmationPhrase {
		return ErrWrongConfirmPhrase
	}
	if !confirmImmediate {
		return ErrImmediateNotConfirmed
	}

	if _, err := user.Lifecycle().DeleteNow(); err != nil {
		return err
	}

	s.notifyDeletion(ctx, user)

	if err := s.userRepo.DeleteUser(ctx, user.UUID); err != nil {
		return err
	}

	log.Info().Str("user", userUUID).Str("username", user.Username).Msg("account deleted immediately")
	return nil
}

// SweepExpiredAccounts purges every account whose grace period elapsed. The
// scheduled date is re-checked against the clock per account, so a deletion
// cancelled between the query and the purge survives.
func (s *accountService) SweepExpiredAccounts(ctx context.Context) ([]domain.DeletionNotice, error) {
	now := s.clock.Now()

	due, err := s.userRepo.GetUsersDueForDeletion(ctx, now)
	if err != nil {
		return nil, err
	}

	var notices []domain.DeletionNotice
	for i := range *due {
		user := &(*due)[i]

		if _, purge := user.Lifecycle().Sweep(now); !purge {
			continue
		}

		s.notifyDeletion(ctx, user)

		if err := s.userRepo.DeleteUser(ctx, user.UUID); err != nil {
			log.Error().Err(err).Str("user", user.UUID).Msg("sweep failed to purge account")
			continue
		}

		log.Info().Str("user", user.UUID).Str("username", user.Username).Msg("expired account purged")
		notices = append(notices, domain.DeletionNotice{
			Identifier: user.Username,
			Email:      user.Email,
		})
	}

	return notices, nil
}

func (s *accountService) notifyDeletion(ctx context.Context, user *domain.User) {
	if err := s.notifier.Send(ctx, domain.Notice{
		Kind:     domain.NoticeDeletion,
		To:       user.Email,
		Username: user.Username,
	}); err != nil {
		log.Warn().Err(err).Str("user", user.UUID).Msg("deletion notice not delivered")
	}
}
