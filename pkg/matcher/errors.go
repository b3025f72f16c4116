package matcher

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func IndexEmptyError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IndexEmptyError,
		Msg:  "The name index is empty, build it with <em>gnmatch index</em>",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New("empty name index")),
	}
}
