package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1 // a program failed to compile
	exitUsage  = 2 // bad arguments, configuration or I/O
)

// verboseStacks is the verbosity above which errors print with stack
// traces.
const verboseStacks = 3

// exit is replaced by tests.
var exit = os.Exit

// failure marks an error as a compilation failure rather than a usage or
// I/O error.
type failure struct {
	err error
}

func (f *failure) Error() string { return f.err.Error() }
func (f *failure) Cause() error  { return f.err }
func (f *failure) Unwrap() error { return f.err }

// runFunc wraps an error-returning run function with the standard error
// handling: the error is printed and the process exits with its code.
func runFunc(g *globals, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		err := run(cmd, args)
		if err == nil {
			return
		}

		var msg string
		if g.verbose > verboseStacks {
			msg = detailedError(err)
		} else {
			msg = errorMessage(err)
			glog.V(3).Info(detailedError(err))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", msg)
		glog.Flush()

		code := exitUsage
		var f *failure
		if errors.As(err, &f) {
			code = exitFailed
		}
		exit(code)
	}
}

// detailedError returns the error message followed by the stack traces
// recorded along its causer chain, one level at a time.
func detailedError(err error) string {
	msg := errorMessage(err)
	hasstack := false
	for err != nil {
		if stackerr, ok := err.(interface {
			StackTrace() errors.StackTrace
		}); ok {
			msg += "\n"
			if hasstack {
				msg += "CAUSED BY...\n"
			}
			hasstack = true
			for _, f := range stackerr.StackTrace() {
				msg += fmt.Sprintf("%+v\n", f)
			}
		}

		causer, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = causer.Cause()
	}
	return msg
}

// errorMessage formats err, listing the errors of a multierror one per
// line.
func errorMessage(err error) string {
	var multi *multierror.Error
	if errors.As(err, &multi) {
		wr := multi.WrappedErrors()
		if len(wr) == 1 {
			return errorMessage(wr[0])
		}
		msg := fmt.Sprintf("%d errors occurred:", len(wr))
		for i, werr := range wr {
			msg += fmt.Sprintf("\n    %d) %s", i+1, errorMessage(werr))
		}
		return msg
	}
	return err.Error()
}
