package chat

import "errors"

// Input errors abort the turn and leave the session untouched.
var (
	ErrNoActiveSession    = errors.New("no active chat session")
	ErrUnprocessableInput = errors.New("could not process input")
	ErrUnsupportedUpload  = errors.New("unsupported upload type")
)

// User-facing warnings for aborted turns.
const (
	WarnNoActiveSession   = "No active chat session. Please start a new chat."
	WarnUnprocessable     = "Could not process input. Please try again."
	WarnUnsupportedUpload = "Only PDF, PNG and JPG files are supported."
)

// WarningFor maps an input error to the message shown to the user.
func WarningFor(err error) string {
	switch {
	case errors.Is(err, ErrNoActiveSession):
		return WarnNoActiveSession
	case errors.Is(err, ErrUnsupportedUpload):
		return WarnUnsupportedUpload
	default:
		return WarnUnprocessable
	}
}
