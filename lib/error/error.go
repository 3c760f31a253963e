/*Package error contains AutoPas' error reporting helpers. AutoPas
distinguishes two kinds of failure: a configuration problem the caller can
fix, and an internal invariant violation that requires a code change.
*/
package error

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
)

// External reports an error to stderr and kills the process. It should be
// used by command-line entry points when a problem is something a user
// could reasonably be expected to fix through changes in configuration.
// It has the same signature as the standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	log.Printf("autopas exited early with the following error:\n"+format, a...)
	os.Exit(1)
}

// Internal reports an error to stderr along with a stack trace and kills
// the process. It should be used when the error requires a code dive to
// fix rather than a configuration change.
func Internal(format string, a ...interface{}) {
	log.Println("autopas hit an internal error:")
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n\n")
	debug.PrintStack()
	os.Exit(1)
}

// Newf builds a plain error value carrying the same kind of message that
// External would print. Library code (anything under lib/) must never call
// os.Exit itself, so config validation, region-iterator bounds checks and
// empty search-space detection all return errors built with Newf instead;
// only cmd/autopas-bench turns such an error into a process exit.
func Newf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}

// InternalNewf is Newf's counterpart for invariant violations detected deep
// inside library code, where panicking would take down a caller's whole
// simulation. The stack trace is captured in the error text so it survives
// being wrapped by a caller.
func InternalNewf(format string, a ...interface{}) error {
	args := append(append([]interface{}{}, a...), debug.Stack())
	return fmt.Errorf("autopas internal error: "+format+"\n%s", args...)
}
