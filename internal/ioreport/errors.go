package ioreport

import (
	"fmt"
	"runtime"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/errcode"
	"github.com/gnames/gn"
)

func NoDatasetsError(schemaPath string) error {
	msg := "None of the datasets in <em>%s</em> could be resolved"
	vars := []any{schemaPath}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DatasetResolutionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no datasets resolved", fn),
	}
}

func LayoutError(err error) error {
	msg := "Cannot build the report layout"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LayoutError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: layout failed: %w", fn, err),
	}
}
