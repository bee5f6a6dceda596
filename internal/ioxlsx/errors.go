package ioxlsx

import (
	"fmt"
	"runtime"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/errcode"
	"github.com/gnames/gn"
)

func SchemaOpenError(path string, err error) error {
	msg := "Cannot open schema workbook <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open schema: %w", fn, err),
	}
}

func SheetMissingError(sheet string, err error) error {
	msg := "Schema workbook does not contain the <em>%s</em> sheet"
	vars := []any{sheet}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaSheetMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: missing sheet %s: %w", fn, sheet, err),
	}
}

func SchemaParseError(detail string, err error) error {
	msg := "Invalid schema workbook: %s. " +
		"Ensure all the required fields exist within the excel sheet"
	vars := []any{detail}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: schema parse: %s: %w", fn, detail, err),
	}
}

func ReportWriteError(sheet string, err error) error {
	msg := "Cannot render report sheet <em>%s</em>"
	vars := []any{sheet}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot render sheet %s: %w", fn, sheet, err),
	}
}

func ReportSaveError(path string, err error) error {
	msg := "Cannot save report <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot save report: %w", fn, err),
	}
}
