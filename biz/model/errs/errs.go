package errs

import (
	"fmt"
	"net/http"
)

type Error interface {
	Error() string
	Code() int32
	Msg() string
	StatusCode() int
	SetErr(err error) Error
	SetMsg(msg string) Error
}

type bizError struct {
	code   int32
	status int
	msg    string
}

func (bizErr *bizError) Error() string {
	return fmt.Sprintf("%d:%s", bizErr.code, bizErr.msg)
}

func (bizErr *bizError) Code() int32 {
	return bizErr.code
}

func (bizErr *bizError) Msg() string {
	return bizErr.msg
}

// StatusCode is the HTTP status the error is reported with.
func (bizErr *bizError) StatusCode() int {
	return bizErr.status
}

func (bizErr *bizError) SetErr(err error) Error {
	return New(bizErr.Code(), bizErr.StatusCode(), err.Error())
}

func (bizErr *bizError) SetMsg(msg string) Error {
	return New(bizErr.Code(), bizErr.StatusCode(), msg)
}

func New(code int32, status int, msg string) Error {
	return &bizError{
		code:   code,
		status: status,
		msg:    msg,
	}
}

func ErrorEqual(err1, err2 Error) bool {
	// 都为空
	if err1 == nil && err2 == nil {
		return true
	}

	// 只有一个不为空
	if err1 == nil || err2 == nil {
		return false
	}

	// 都不为空
	return err1.Code() == err2.Code()
}

var (
	Success        = New(0, http.StatusOK, "success")
	ServerError    = New(1_0001, http.StatusInternalServerError, "internal server error")
	ParamError     = New(1_0002, http.StatusBadRequest, "param error")
	Unauthorized   = New(1_0003, http.StatusUnauthorized, "Unauthorized")
	TooManyRequest = New(1_0004, http.StatusTooManyRequests, "too many request")
	Forbidden      = New(1_0005, http.StatusForbidden, "Forbidden")
	RequestBlocked = New(1_0006, http.StatusForbidden, "request is blocked")
	SessionExpired = New(1_0007, http.StatusUnauthorized, "session expired")

	// InvalidCredentials covers both an unknown email and a wrong password.
	InvalidCredentials = New(2_0001, http.StatusUnauthorized, "Invalid credentials")
	OldPasswordWrong   = New(2_0002, http.StatusBadRequest, "old password is incorrect")
	EmailDuplicated    = New(2_0003, http.StatusConflict, "email already registered")
	UserNotExist       = New(2_0004, http.StatusNotFound, "user not exist")
)
