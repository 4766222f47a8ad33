package dashboard

import (
	"errors"
)

// UnauthorizedMessage is the exact message the booking API returns when an
// admin session has expired or lost its privileges. The string itself is part
// of the collaborator contract, so the comparison in IsUnauthorized relies on
// it verbatim.
const UnauthorizedMessage = "Unauthorized access"

var ErrNotAuthenticated = errors.New("not authenticated")

type ErrorKind int

const (
	KindRemote ErrorKind = iota
	KindUnauthorized
)

// RemoteError is a failure reported by the booking API.
type RemoteError struct {
	Kind    ErrorKind
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func NewRemoteError(message string) *RemoteError {
	return &RemoteError{Kind: KindRemote, Message: message}
}

func NewUnauthorizedError() *RemoteError {
	return &RemoteError{Kind: KindUnauthorized, Message: UnauthorizedMessage}
}

// IsUnauthorized reports whether err must route the admin back to the login
// surface. Structured errors are matched on kind; anything else falls back to
// the sentinel message comparison.
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Kind == KindUnauthorized
	}
	return err.Error() == UnauthorizedMessage
}
