package iostore

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func StoreOpenError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  "Cannot open index store at <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: cannot open store: %w", fn.Name(), err),
	}
}

func StoreWriteError(key string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  "Cannot save <em>%s</em> to the index store",
		Vars: []any{key},
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), key, err),
	}
}

func StoreReadError(key string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreReadError,
		Msg:  "Cannot read <em>%s</em> from the index store",
		Vars: []any{key},
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), key, err),
	}
}

func StoreEmptyError(key string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreEmptyError,
		Msg: "Index <em>%s</em> is not built yet, " +
			"run <em>gnmatch index</em> or <em>gnmatch join</em>",
		Vars: []any{key},
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New("key not found")),
	}
}
