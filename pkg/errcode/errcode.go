// Package errcode provides error codes for lupr errors.
// The codes allow to find out where the error occurred and
// provide a user-friendly message.
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

	// Schema errors
	SchemaOpenError
	SchemaSheetMissingError
	SchemaParseError

	// Catalog errors
	CatalogReadError
	CatalogParseError
	DatasetResolutionError

	// Overlay workspace errors
	WorkspaceOpenError
	WorkspaceMissingTableError
	OverlayQueryError
	OverlayScanError
	AOITotalsError

	// Report errors
	LayoutError
	ReportWriteError
	ReportSaveError
)
