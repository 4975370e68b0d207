package connectors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindUnreachable          Kind = "unreachable"
	KindNotFound             Kind = "not_found"
	KindMissingTitle         Kind = "missing_title"
	KindMissingEpisodeSource Kind = "missing_episode_source"
	KindNoServersFound       Kind = "no_servers_found"
	KindInternal             Kind = "internal"
)

// Error is the classified failure every public connector operation returns.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return string(KindInternal)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf classifies err. Anything not produced through Error is internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var classified *Error
	if errors.As(err, &classified) && classified.Kind != "" {
		return classified.Kind
	}
	return KindInternal
}
