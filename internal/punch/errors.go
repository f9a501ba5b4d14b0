package punch

import "errors"

// Rejection reasons, matchable with errors.Is. Handlers map these to HTTP
// statuses; the Rejection wrapper carries the user-facing message.
var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNoActiveShift       = errors.New("no active shift")
	ErrShiftEnded          = errors.New("shift ended")
	ErrInvalidPunchOrder   = errors.New("invalid punch order")
	ErrAlreadyPunchedIn    = errors.New("already punched in")
	ErrNotPunchedIn        = errors.New("not punched in")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// Rejection is a punch attempt turned down before anything was written. The
// message is meant for the user verbatim.
type Rejection struct {
	Reason  error
	Message string
}

func (r *Rejection) Error() string { return r.Message }

func (r *Rejection) Unwrap() error { return r.Reason }

func reject(reason error, message string) error {
	return &Rejection{Reason: reason, Message: message}
}
