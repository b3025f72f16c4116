package ioindex

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func DatasetSourceError(key string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DatasetsConfigError,
		Msg:  "Dataset <em>%s</em> has no SFGA source",
		Vars: []any{key},
		Err:  fmt.Errorf("from %s: dataset %s misses sfga field", fn.Name(), key),
	}
}
