// Package debug provides env-gated tracing for the evaluator core.
//
// Flags are read once at process start; there is no runtime API to
// change them, mirroring how a compiled diagnostic build is normally
// toggled through the environment rather than a config file.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Eval     bool
	Operator bool
	Function bool
	Registry bool
	Type     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Eval = boolEnv("LANGCORE_DEBUG_EVAL")
	d.Operator = boolEnv("LANGCORE_DEBUG_OPERATOR")
	d.Function = boolEnv("LANGCORE_DEBUG_FUNCTION")
	d.Registry = boolEnv("LANGCORE_DEBUG_REGISTRY")
	d.Type = boolEnv("LANGCORE_DEBUG_TYPE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Eval reports whether AST-walking trace logging is enabled.
func Eval() bool { return d.Eval }

// Operator reports whether operator dispatch trace logging is enabled.
func Operator() bool { return d.Operator }

// Function reports whether function dispatch trace logging is enabled.
func Function() bool { return d.Function }

// Registry reports whether declaration registration trace logging is enabled.
func Registry() bool { return d.Registry }

// Type reports whether type-algebra trace logging (is_instance/is_assignable) is enabled.
func Type() bool { return d.Type }

// Logf writes a formatted trace line to stderr.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// LogAny writes a best-effort JSON representation of v to stderr, falling
// back to %v if it cannot be marshaled.
func LogAny(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(b)
	fmt.Fprintln(os.Stderr)
}
