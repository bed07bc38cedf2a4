package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	InvalidParams  Code = "invalid_params"
	Unsupported    Code = "unsupported"
	PLLUnreachable Code = "pll_unreachable"
	PLLLockTimeout Code = "pll_lock_timeout"
	AlreadyFrozen  Code = "already_frozen"
	Timeout        Code = "timeout"

	Error Code = "error" // generic fallback
)

// E keeps a Code together with the failing operation and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// New builds an *E wrapping cause under code c.
func New(c Code, op string, cause error) *E {
	e := &E{C: c, Op: op, Err: cause}
	if cause != nil {
		e.Msg = cause.Error()
	}
	return e
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
