package joinindex

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func BuildError(key string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JoinIndexBuildError,
		Msg:  "Cannot build join index for dataset <em>%s</em>",
		Vars: []any{key},
		Err:  fmt.Errorf("from %s: join index %s: %w", fn.Name(), key, err),
	}
}
