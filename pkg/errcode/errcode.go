package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	DatasetsConfigError
	DatasetNotFoundError

	// Dictionary errors
	DictionaryReadError

	// Index errors
	IndexEmptyError
	IndexDuplicateIDError
	JoinIndexBuildError

	// Backbone loading errors
	SFGAFetchError
	SFGAReadError
	DBConnectionError
	DBQueryError

	// Snapshot store errors
	StoreOpenError
	StoreWriteError
	StoreReadError
	StoreEmptyError

	// Matching input errors
	MatchInputError
	MatchOutputError
)
