package domain

import (
	"context"
	"time"
)

type NoticeKind string

const (
	NoticeVerification    NoticeKind = "verification"     // account verification email, delivery is mandatory
	NoticeLoginAlert      NoticeKind = "login_alert"      // new login on the account
	NoticePasswordChanged NoticeKind = "password_changed" // password was changed
	NoticePasswordReset   NoticeKind = "password_reset"   // reset link requested
	NoticeDeactivation    NoticeKind = "deactivation"     // grace period started
	NoticeDeletion        NoticeKind = "deletion"         // account purged
)

// Notice is a structured notification request for the mail collaborator.
// Every send except NoticeVerification is best-effort: the triggering
// operation logs a failure and continues.
type Notice struct {
	Kind     NoticeKind
	To       string
	Username string
	// Data holds kind-specific template values (token, scheduled date,
	// login IP, ...).
	Data map[string]string
}

// DeletionNotice is emitted by the lifecycle sweep for every purged account.
type DeletionNotice struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
}

type Notifier interface {
	Send(ctx context.Context, n Notice) error
}

// Clock abstracts time.Now so the 30-day grace arithmetic is testable.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the production clock.
var SystemClock Clock = ClockFunc(time.Now)
