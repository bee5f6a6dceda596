package iocatalog

import (
	"fmt"
	"runtime"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/errcode"
	"github.com/gnames/gn"
)

func CatalogReadError(path string, err error) error {
	msg := "Cannot read catalog <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read catalog: %w", fn, err),
	}
}

func CatalogParseError(path string, err error) error {
	msg := "Catalog <em>%s</em> is not valid YAML"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse catalog: %w", fn, err),
	}
}
