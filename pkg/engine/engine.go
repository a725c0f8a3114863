// Package engine evaluates pyblow parameter scripts. It wraps zygomys in a
// sandboxed environment and turns every (bubble ...) form in the script
// into one set of sheet parameters.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/pyblow/pkg/sheet"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a parameter script and returns the bubbles it declares,
// in declaration order.
//
// Return semantics:
//   - On success: returns params + nil errors + nil error
//   - On parse/eval failure: returns nil params + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) ([]sheet.Params, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		params, evalErrs, err := e.evaluate(source)
		ch <- evalResult{params: params, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) ([]sheet.Params, []EvalError, error) {
	// Empty source is a valid script that declares nothing.
	if strings.TrimSpace(source) == "" {
		return []sheet.Params{}, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	params := []sheet.Params{}
	registerBuiltins(env, &params)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	if evalErrs := checkOutputs(params); len(evalErrs) > 0 {
		return nil, evalErrs, nil
	}
	return params, nil, nil
}

// checkOutputs reports bubbles that would overwrite each other's file.
func checkOutputs(params []sheet.Params) []EvalError {
	outputs := lo.Map(params, func(p sheet.Params, _ int) string { return p.Output })
	var errs []EvalError
	for _, dup := range lo.FindDuplicates(outputs) {
		errs = append(errs, EvalError{
			Message: fmt.Sprintf("output %q is written by more than one bubble", dup),
		})
	}
	return errs
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
