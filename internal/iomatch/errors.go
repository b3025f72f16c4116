package iomatch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func MatchInputError(line int, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MatchInputError,
		Msg:  "Cannot read names input at line <em>%d</em>",
		Vars: []any{line},
		Err:  fmt.Errorf("from %s: line %d: %w", fn.Name(), line, err),
	}
}

func MatchOutputError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MatchOutputError,
		Msg:  "Cannot write matching results",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
