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

	// DOI lookup errors
	UnknownDOIError

	// Metadata API errors
	LocateError

	// Download errors
	FetchHTTPError
	FetchIncompleteError
	FetchRetriesExhaustedError
	FetchWriteError

	// Archive errors
	ArchiveReadError
	NoDevMembersError
	NoClusterMatchError

	// Import errors
	ImportFormatError
	ImportValidationError
	ImportStoreError
)
