package main

import (
	"os"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	_ "github.com/2x3systems/tri6/py6"
	_ "github.com/go-python/gpython/stdlib"
)

// startupScript is run ahead of the REPL when present in the working dir.
const startupScript = "lib/_REPL_startup.py"

// go_gpython runs the given script, or a REPL if pathname is empty, with the _py6 module available.
//
// The py context is closed (which releases any workspace catalogs) before returning.
func go_gpython(pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	err := runPython(ctx, pathname)
	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		if len(pathname) > 0 {
			err = errors.Wrapf(err, "running %q", pathname)
		}
	}
	return err
}

func runPython(ctx py.Context, pathname string) error {
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)
		if _, statErr := os.Stat(startupScript); statErr == nil {
			klog.V(2).Infof("running %q", startupScript)
			if _, err := py.RunFile(ctx, startupScript, py.CompileOpts{}, replCtx.Module); err != nil {
				return err
			}
		}
		cli.RunREPL(replCtx)
		return nil
	}

	startTime := time.Now()
	klog.V(2).Infof("executing %q", pathname)
	if _, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil); err != nil {
		return err
	}
	klog.V(2).Infof("%q complete in %v", pathname, time.Since(startTime))
	return nil
}
