package dashboard

import (
	"github.com/google/uuid"
)

// Principal is the authenticated identity behind the current session.
type Principal struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Role     string
}

// Session is the auth collaborator. It is injected rather than read from
// ambient state so tests can hand the guard a fake session.
type Session interface {
	CurrentPrincipal() (Principal, bool)
	IsAdmin() bool
	SignOut() error
}

// Navigator moves the user to the login surface.
type Navigator interface {
	RedirectToLogin()
}

// Notifier is the fire-and-forget notification sink.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Guard verifies an active, privileged session before any booking data is
// fetched. A missing principal redirects silently; an unprivileged one is
// told about it first. The returned error tells the caller to stop.
func Guard(session Session, nav Navigator, notify Notifier) error {
	if _, ok := session.CurrentPrincipal(); !ok {
		nav.RedirectToLogin()
		return ErrNotAuthenticated
	}
	if !session.IsAdmin() {
		notify.Error(UnauthorizedMessage)
		nav.RedirectToLogin()
		return NewUnauthorizedError()
	}
	return nil
}
