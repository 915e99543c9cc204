package tradier

import (
	"fmt"

	"github.com/tradekit/gotradier/pkg/web"
)

// APIError is the transport-level error: non-200 status or an embedded
// error payload. Re-exported so callers only import this package.
type APIError = web.APIError

// NotAvailableError is returned for endpoints the sandbox environment
// does not implement (user profile, account history).
type NotAvailableError struct {
	Msg string
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("API is not available: %s", e.Msg)
}

// InvalidParameterError reports a request parameter the broker would
// reject, caught before the call is made.
type InvalidParameterError struct {
	Msg string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("parameter is not valid: %s", e.Msg)
}

// MissingParameterError reports a required parameter that was not set,
// e.g. price on a limit order.
type MissingParameterError struct {
	Msg string
}

func (e *MissingParameterError) Error() string {
	return e.Msg
}

// InvalidExpirationError reports an option expiration date that is not
// in YYYY-MM-DD form.
type InvalidExpirationError struct {
	Expiration string
}

func (e *InvalidExpirationError) Error() string {
	return fmt.Sprintf("expiration date %q is not valid, want YYYY-MM-DD", e.Expiration)
}

// InvalidOptionTypeError reports an option type other than call or put.
type InvalidOptionTypeError struct {
	OptionType string
}

func (e *InvalidOptionTypeError) Error() string {
	return fmt.Sprintf("option type %q is not valid, want call or put", e.OptionType)
}

// InvalidDateError reports a date parameter that is not in YYYY-MM-DD form.
type InvalidDateError struct {
	Date string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date %q is not valid, want YYYY-MM-DD", e.Date)
}
