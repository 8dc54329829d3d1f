package iounite

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
)

// TempDirError creates an error for a download directory that cannot be
// created.
func TempDirError(parent string, err error) error {
	msg := "Cannot create temporary directory in <em>%s</em>"
	vars := []any{parent}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create download directory: %w",
			fn.Name(), err),
	}
}
