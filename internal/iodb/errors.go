package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

// ConnectionError is returned when the database is unreachable.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg: `Could not connect to PostgreSQL <em>%s@%s:%d/%s</em>
   Check that PostgreSQL is running and the <em>database</em> section
   of <em>~/.config/gnmatch/config.yaml</em>`,
		Vars: []any{user, host, port, database},
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

// QueryError is returned when records of a data source cannot be read.
func QueryError(dataSourceID int, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Cannot read records of data source <em>%d</em>",
		Vars: []any{dataSourceID},
		Err: fmt.Errorf("from %s: query of data source %d failed: %w",
			fn.Name(), dataSourceID, err),
	}
}
