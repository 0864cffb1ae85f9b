package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Streams used by the message helpers. ApplyGlobalFlags points them at the
// running command so that cobra's SetOut and SetErr capture them too.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Global flags (set from the root command)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// SetStreams redirects the message helpers to cmd's output and error
// writers.
func SetStreams(cmd *cobra.Command) {
	stdout = cmd.OutOrStdout()
	stderr = cmd.ErrOrStderr()
}

// messageKind picks the prefix of a one-line message: a symbol normally, a
// plain word with --no-color.
type messageKind struct {
	symbol string
	word   string
}

var (
	kindSuccess = messageKind{"✓", "OK"}
	kindInfo    = messageKind{"ℹ", "INFO"}
	kindWarning = messageKind{"⚠", "WARNING"}
	kindError   = messageKind{"✗", "ERROR"}
)

func printMessage(w io.Writer, kind messageKind, format string, args ...interface{}) {
	prefix := kind.symbol
	if noColor {
		prefix = kind.word + ":"
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Confirm asks a yes/no question on stdout. With --yes it answers itself.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(stdout, prompt+suffix)

	response, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PrintSuccess reports a completed action unless --quiet is set.
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		printMessage(stdout, kindSuccess, format, args...)
	}
}

// PrintInfo reports something the user may want to know unless --quiet is set.
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		printMessage(stdout, kindInfo, format, args...)
	}
}

// PrintWarning goes to stderr, even with --quiet.
func PrintWarning(format string, args ...interface{}) {
	printMessage(stderr, kindWarning, format, args...)
}

// PrintError goes to stderr, even with --quiet.
func PrintError(format string, args ...interface{}) {
	printMessage(stderr, kindError, format, args...)
}
