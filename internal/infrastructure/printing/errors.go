package printing

import "errors"

// RenderCode classifies why a document could not be produced
type RenderCode string

const (
	ErrCodeRenderTimeout   RenderCode = "RENDER_TIMEOUT"
	ErrCodeRenderFailed    RenderCode = "RENDER_FAILED"
	ErrCodeInvalidHTML     RenderCode = "INVALID_HTML"
	ErrCodeUnknownTemplate RenderCode = "UNKNOWN_TEMPLATE"
)

// RenderError is returned by the template engine and the PDF converter
type RenderError struct {
	Code    RenderCode
	Message string
	Cause   error
}

// NewRenderError creates a RenderError; cause may be nil
func NewRenderError(code RenderCode, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }

// IsTimeout reports whether err, anywhere in its chain, is a render timeout
func IsTimeout(err error) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Code == ErrCodeRenderTimeout
}
