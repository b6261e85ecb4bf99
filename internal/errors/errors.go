package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound     ErrorCode = "account_not_found"
	UserNotFound        ErrorCode = "user_not_found"
	InvalidPIN          ErrorCode = "invalid_pin"
	NotLoggedIn         ErrorCode = "not_logged_in"
	DuplicateAccount    ErrorCode = "duplicate_account"
	InvalidInput        ErrorCode = "invalid_input"
	InvalidAmount       ErrorCode = "invalid_amount"
	InsufficientBalance ErrorCode = "insufficient_balance"
	SameAccountTransfer ErrorCode = "same_account_transfer"
	LoanRejected        ErrorCode = "loan_rejected"
	CloseRejected       ErrorCode = "close_rejected"
	RateLimited         ErrorCode = "rate_limited"
	InternalError       ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on the error code so predefined errors can be compared with
// errors.Is even after WithDetails produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy carrying details; predefined errors stay untouched.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound, UserNotFound:
		return http.StatusNotFound
	case InvalidPIN, NotLoggedIn:
		return http.StatusUnauthorized
	case CloseRejected:
		return http.StatusForbidden
	case DuplicateAccount:
		return http.StatusConflict
	case InvalidInput, InvalidAmount, SameAccountTransfer:
		return http.StatusBadRequest
	case InsufficientBalance, LoanRejected:
		return http.StatusUnprocessableEntity
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrAccountNotFound     = NewAppError(AccountNotFound, "account not found")
	ErrReceiverNotFound    = NewAppError(AccountNotFound, "receiver account not found")
	ErrUserNotFound        = NewAppError(UserNotFound, "User doesn't exist!")
	ErrInvalidPIN          = NewAppError(InvalidPIN, "incorrect pin")
	ErrNotLoggedIn         = NewAppError(NotLoggedIn, "no account is logged in")
	ErrDuplicateAccount    = NewAppError(DuplicateAccount, "account already exists")
	ErrInvalidInput        = NewAppError(InvalidInput, "invalid input")
	ErrInvalidAmount       = NewAppError(InvalidAmount, "amount must be greater than zero")
	ErrInsufficientBalance = NewAppError(InsufficientBalance, "insufficient balance")
	ErrSameAccountTransfer = NewAppError(SameAccountTransfer, "cannot transfer to the same account")
	ErrLoanRejected        = NewAppError(LoanRejected, "no deposit of at least 10% of the requested loan")
	ErrCloseRejected       = NewAppError(CloseRejected, "username or pin does not match the current account")
	ErrRateLimited         = NewAppError(RateLimited, "too many requests")
)
