package main

import "github.com/spf13/cobra"

// cliError carries an exit code and optional usage behavior through the
// cobra error path so run() can map failures to process exit codes.
type cliError struct {
	Code      int
	Err       error
	ShowUsage bool
	Cmd       *cobra.Command
}

func (e *cliError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *cliError) Unwrap() error { return e.Err }

// errExit0 signals a clean early exit (for example --version).
var errExit0 = &cliError{Code: 0}

// usageErr wraps a flag or argument problem as exit code 2 with usage.
func usageErr(cmd *cobra.Command, err error) error {
	return &cliError{Code: 2, Err: err, ShowUsage: true, Cmd: cmd}
}
