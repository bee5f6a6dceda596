package iooverlay

import (
	"fmt"
	"runtime"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/errcode"
	"github.com/gnames/gn"
)

func WorkspaceOpenError(path string, err error) error {
	msg := "Cannot open overlay workspace <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WorkspaceOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open workspace: %w", fn, err),
	}
}

func MissingTableError(table, dataset string) error {
	msg := "Workspace has no overlay table <em>%s</em> for dataset %s"
	vars := []any{table, dataset}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WorkspaceMissingTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: missing overlay table %s",
			fn, table),
	}
}

func OverlayQueryError(dataset string, err error) error {
	msg := "Cannot query overlay records for <em>%s</em>"
	vars := []any{dataset}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OverlayQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: overlay query failed: %w", fn, err),
	}
}

func OverlayScanError(dataset string, err error) error {
	msg := "Cannot read overlay record for <em>%s</em>"
	vars := []any{dataset}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OverlayScanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: overlay scan failed: %w", fn, err),
	}
}

func AOITotalsError(path string, err error) error {
	msg := "Cannot read net AOI areas from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AOITotalsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read net_aoi: %w", fn, err),
	}
}
