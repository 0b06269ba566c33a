package analysis

import "fmt"

// ErrorCode classifies analysis failures for callers that map them onto
// protocol errors.
type ErrorCode string

const (
	CodeDecodeFailed ErrorCode = "DECODE_FAILED"
	CodeCancelled    ErrorCode = "ANALYSIS_CANCELLED"
	CodeRenderFailed ErrorCode = "RENDER_FAILED"
	CodeOCRFailed    ErrorCode = "OCR_FAILED"
)

// Error is a structured analysis error.
type Error struct {
	Code  ErrorCode
	Op    string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds an Error.
func NewError(code ErrorCode, op string, cause error) *Error {
	return &Error{Code: code, Op: op, Cause: cause}
}
