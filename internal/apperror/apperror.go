// Package apperror defines the typed error taxonomy shared by the repository,
// service and HTTP layers. The repository returns these errors directly and the
// HTTP layer maps them to status codes in one place.
package apperror

import "errors"

// Kind classifies an error for the transport boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthorized
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified application error. Two errors match under errors.Is
// when their Kind and Reason are equal, regardless of message or cause.
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

// WithMessage returns a copy of e carrying msg.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// Wrap returns a copy of e with err attached as its cause.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// Reasons.
const (
	ReasonInvalidInput       = "invalid_input"
	ReasonNoToken            = "no_token"
	ReasonTokenExpired       = "token_expired"
	ReasonTokenMalformed     = "token_malformed"
	ReasonInvalidSignature   = "invalid_signature"
	ReasonVerificationFailed = "verification_failed"
	ReasonBadCredentials     = "bad_credentials"
	ReasonDuplicateEmail     = "duplicate_email"
	ReasonDuplicateVote      = "duplicate_vote"
	ReasonUserNotFound       = "user_not_found"
	ReasonFeatureNotFound    = "feature_not_found"
	ReasonVoteNotFound       = "vote_not_found"
)

var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput, Reason: ReasonInvalidInput, Message: "invalid input"}

	ErrNoToken            = &Error{Kind: KindUnauthorized, Reason: ReasonNoToken, Message: "access denied: no token provided or invalid format"}
	ErrTokenExpired       = &Error{Kind: KindUnauthorized, Reason: ReasonTokenExpired, Message: "token expired"}
	ErrTokenMalformed     = &Error{Kind: KindUnauthorized, Reason: ReasonTokenMalformed, Message: "invalid token"}
	ErrInvalidSignature   = &Error{Kind: KindUnauthorized, Reason: ReasonInvalidSignature, Message: "invalid token signature"}
	ErrVerificationFailed = &Error{Kind: KindUnauthorized, Reason: ReasonVerificationFailed, Message: "token verification failed"}
	ErrBadCredentials     = &Error{Kind: KindUnauthorized, Reason: ReasonBadCredentials, Message: "invalid credentials"}

	ErrDuplicateEmail = &Error{Kind: KindConflict, Reason: ReasonDuplicateEmail, Message: "user already exists with this email"}
	ErrDuplicateVote  = &Error{Kind: KindConflict, Reason: ReasonDuplicateVote, Message: "vote already exists for this feature"}

	ErrUserNotFound    = &Error{Kind: KindNotFound, Reason: ReasonUserNotFound, Message: "user not found"}
	ErrFeatureNotFound = &Error{Kind: KindNotFound, Reason: ReasonFeatureNotFound, Message: "feature not found"}
	ErrVoteNotFound    = &Error{Kind: KindNotFound, Reason: ReasonVoteNotFound, Message: "vote not found"}
)

// Invalid returns an InvalidInput error with the given message.
func Invalid(msg string) error {
	return ErrInvalidInput.WithMessage(msg)
}

// KindOf reports the Kind of err, KindInternal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ReasonOf reports the Reason of err, empty when err is not classified.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
