package httperr

import (
	"errors"
	"net/http"
)

// BusinessError is an expected failure that maps to a client-facing response.
// It is comparable, so package-level values work with errors.Is.
type BusinessError struct {
	Code    string
	Status  int
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Status: http.StatusBadRequest}
}

func New(status int, code, message string) BusinessError {
	return BusinessError{Code: code, Status: status, Message: message}
}

func Validation(code, message string) BusinessError {
	return New(http.StatusBadRequest, code, message)
}

func NotFoundErr(code, message string) BusinessError {
	return New(http.StatusNotFound, code, message)
}

func Auth(code, message string) BusinessError {
	return New(http.StatusUnauthorized, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
