package nameindex

import (
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func DuplicateIDError(id string) error {
	return &gn.Error{
		Code: errcode.IndexDuplicateIDError,
		Msg:  "Name usage key <em>%s</em> is not unique",
		Vars: []any{id},
		Err:  errors.New("duplicate usage key " + id),
	}
}

func MissingIDError(name string) error {
	return &gn.Error{
		Code: errcode.IndexDuplicateIDError,
		Msg:  "Name usage <em>%s</em> has no key",
		Vars: []any{name},
		Err:  errors.New("empty usage key for " + name),
	}
}
