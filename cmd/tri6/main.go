package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
)

func main() {
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	params, err := parseParams(os.Args[1:])
	if err == nil {
		if params.runREPL() {
			err = go_gpython(params.Script)
		} else {
			err = run(params, os.Stdout)
		}
	}

	if err != nil && err != flag.ErrHelp {
		klog.Errorf("tri6: %v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}
