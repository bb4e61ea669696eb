package ctl

import "github.com/mhuth/fnkeyd/ctltypes"

func ErrBadRequest(detail string) *ctltypes.CtlError {
	return &ctltypes.CtlError{Status: 400, Title: "Bad Request", Detail: detail}
}
func ErrNotFound(detail string) *ctltypes.CtlError {
	return &ctltypes.CtlError{Status: 404, Title: "Not Found", Detail: detail}
}
func ErrInternal(detail string) *ctltypes.CtlError {
	return &ctltypes.CtlError{Status: 500, Title: "Internal Server Error", Detail: detail}
}

// WrapError normalizes any error into ctltypes.CtlError.
func WrapError(err error) *ctltypes.CtlError {
	if ce, ok := err.(*ctltypes.CtlError); ok {
		return ce
	}
	if ce, ok := err.(ctltypes.CtlError); ok {
		return &ce
	}
	return ErrInternal(err.Error())
}
