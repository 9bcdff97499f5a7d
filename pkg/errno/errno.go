package errno

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const (
	SuccessCode          = 0
	InvalidArgumentCode  = 10001
	AuthenticationCode   = 10002
	UnauthorizedCode     = 10003
	NotFoundCode         = 10004
	InternalErrCode      = 10005
	TooManyRequestsCode  = 10006
	defaultInternalError = "Internal server error"
)

// ErrNo is the error value every service returns to the api layer.
// Status is the HTTP status the handler answers with.
type ErrNo struct {
	ErrCode int64
	ErrMsg  string
	Status  int
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, status int, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg, Status: status}
}

// WithMessage returns a copy of e carrying msg.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success            = NewErrNo(SuccessCode, http.StatusOK, "Success")
	Created            = NewErrNo(SuccessCode, http.StatusCreated, "Created")
	InvalidArgumentErr = NewErrNo(InvalidArgumentCode, http.StatusBadRequest, "Invalid argument")
	AuthenticationErr  = NewErrNo(AuthenticationCode, http.StatusUnauthorized, "Authentication required")
	UnauthorizedErr    = NewErrNo(UnauthorizedCode, http.StatusForbidden, "Unauthorized")
	NotFoundErr        = NewErrNo(NotFoundCode, http.StatusNotFound, "Not found")
	InternalErr        = NewErrNo(InternalErrCode, http.StatusInternalServerError, defaultInternalError)
	TooManyRequestsErr = NewErrNo(TooManyRequestsCode, http.StatusTooManyRequests, "Too many requests")
)

// ConvertErr convert error to ErrNo
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	return InternalErr
}

// Internal logs the cause of a failed op and hides it behind InternalErr.
func Internal(ctx context.Context, err error, op string) error {
	hlog.CtxErrorf(ctx, "%s: %+v", op, err)
	return errors.WithMessage(InternalErr, op)
}
