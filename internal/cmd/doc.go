// Package cmd runs external processes for devflow.
//
// Every git invocation and every toolchain command (npm, yarn, pod, ...) goes
// through this package so that stderr is captured, verbose logging is
// uniform, and a per-process timeout can be applied in one place.
//
// # Usage
//
//	r := cmd.NewExecRunner(30 * time.Minute)
//	res, err := r.Run(ctx, "/path/to/project", "npm", "install")
//	if err != nil {
//	    // process could not start, timed out or was cancelled
//	}
//	if !res.ExitSuccess {
//	    fmt.Println(res.ErrorText())
//	}
//
// Where a non-zero exit should simply be an error, wrap the call in [Check];
// the returned error carries the trimmed stderr text.
//
// # Design Notes
//
// devflow shells out to the git CLI rather than using a Go git library so
// that user configuration (SSH keys, credential helpers, hooks) keeps working.
// There is no stdin: commands that prompt will see EOF.
package cmd
