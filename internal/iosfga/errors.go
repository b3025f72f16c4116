package iosfga

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func SFGAFetchError(src string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAFetchError,
		Msg:  "Cannot get SFGA archive from <em>%s</em>",
		Vars: []any{src},
		Err:  fmt.Errorf("from %s: cannot fetch %s: %w", fn.Name(), src, err),
	}
}

func SFGAReadError(source string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAReadError,
		Msg:  "Cannot read SFGA data from <em>%s</em>",
		Vars: []any{source},
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), source, err),
	}
}

func SFGAVersionError(version string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAReadError,
		Msg:  "SFGA version <em>%s</em> is not supported",
		Vars: []any{version},
		Err:  fmt.Errorf("from %s: bad SFGA version '%s': %w", fn.Name(), version, err),
	}
}
