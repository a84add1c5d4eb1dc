package domain

import (
	"errors"
	"time"
)

// DeletionGracePeriod is the interval between a deletion request and the
// irreversible purge. Logging in during this window cancels the deletion.
const DeletionGracePeriod = 30 * 24 * time.Hour

var (
	ErrNotPendingDeletion = errors.New("account is not pending deletion")
	ErrNotActive          = errors.New("account is not active")
)

type LifecyclePhase int

const (
	PhaseActive LifecyclePhase = iota
	PhasePendingDeletion
	PhaseDeleted
)

func (p LifecyclePhase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhasePendingDeletion:
		return "pending_deletion"
	case PhaseDeleted:
		return "deleted"
	}
	return "unknown"
}

// Lifecycle is the deletion state of an account. RequestedAt and PurgeAt are
// set if and only if Phase is PhasePendingDeletion; PurgeAt is always exactly
// RequestedAt plus the grace period. All transitions are pure: they return
// the next state and never mutate the receiver, so the persistence layer
// decides when (and under which lock) to commit the result.
type Lifecycle struct {
	Phase       LifecyclePhase
	RequestedAt time.Time
	PurgeAt     time.Time
}

func ActiveLifecycle() Lifecycle {
	return Lifecycle{Phase: PhaseActive}
}

// RequestDeletion starts the grace period. Only valid from Active.
func (l Lifecycle) RequestDeletion(now time.Time) (Lifecycle, error) {
	if l.Phase != PhaseActive {
		return l, ErrNotActive
	}
	return Lifecycle{
		Phase:       PhasePendingDeletion,
		RequestedAt: now,
		PurgeAt:     now.Add(DeletionGracePeriod),
	}, nil
}

// CancelDeletion reverts to Active and clears both timestamps. Only valid
// from PendingDeletion.
func (l Lifecycle) CancelDeletion() (Lifecycle, error) {
	if l.Phase != PhasePendingDeletion {
		return l, ErrNotPendingDeletion
	}
	return ActiveLifecycle(), nil
}

// AuthenticateSuccessfully applies the implicit-cancel rule: a successful
// credential check for an account in PendingDeletion undoes the pending
// deletion. The returned bool reports whether a cancellation happened.
func (l Lifecycle) AuthenticateSuccessfully() (Lifecycle, bool) {
	if l.Phase != PhasePendingDeletion {
		return l, false
	}
	return ActiveLifecycle(), true
}

// Sweep transitions to Deleted once the grace period has elapsed
// (now >= PurgeAt). The returned bool reports whether the account must now
// be purged; before the deadline, or in any other phase, it is a no-op.
func (l Lifecycle) Sweep(now time.Time) (Lifecycle, bool) {
	if l.Phase != PhasePendingDeletion {
		return l, false
	}
	if now.Before(l.PurgeAt) {
		return l, false
	}
	return Lifecycle{Phase: PhaseDeleted}, true
}

// DeleteNow bypasses the grace period entirely. Only valid from Active; the
// caller is responsible for the double-confirmation contract (current
// password, exact confirmation phrase, explicit immediate flag) before
// invoking it.
func (l Lifecycle) DeleteNow() (Lifecycle, error) {
	if l.Phase != PhaseActive {
		return l, ErrNotActive
	}
	return Lifecycle{Phase: PhaseDeleted}, nil
}
