// Package script runs instrumentation scenarios: YAML lists of debugger
// calls whose arguments are dynamically typed. Arguments are checked the
// way a dynamic caller's would be, so a wrongly typed argument is reported
// with the code of the call site and argument that failed.
//
//	name: startup
//	steps:
//	  - op: start
//	    args: ["boot", 0]
//	  - op: sleep
//	    args: ["20ms"]
//	  - op: finish
//	  - op: average
//	    args: [[{op: sleep, args: [1]}], 50, "tick", false]
package script

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/udu-dev/udu/pkg/decode"
	"github.com/udu-dev/udu/pkg/value"
)

// Step operations.
const (
	OpLog        = "log"
	OpShow       = "show"
	OpPopup      = "popup"
	OpPopupReset = "popupReset"
	OpObserver   = "observer"
	OpPoint      = "point"
	OpStart      = "start"
	OpFinish     = "finish"
	OpAverage    = "average"
	OpSleep      = "sleep"
	OpStop       = "stop"
	OpResume     = "resume"
)

// ErrInvalidScenario is wrapped by every structural scenario error.
var ErrInvalidScenario = fmt.Errorf("invalid scenario")

// Step is one debugger call.
type Step struct {
	Op   string
	Args []any
}

// Scenario is a named list of steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Load reads a scenario from a YAML or JSON file.
func Load(fs afero.Fs, path string) (*Scenario, error) {
	doc, err := decode.File(fs, path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load scenario %s", path)
	}
	return sc, nil
}

// Parse builds a scenario from a decoded document: either an object with
// "name" and "steps" members or a bare list of steps.
func Parse(doc any) (*Scenario, error) {
	sc := &Scenario{}
	list := doc
	if obj, ok := doc.(*value.Object); ok {
		if name, ok := obj.Get("name"); ok {
			sc.Name = value.ToString(name)
		}
		list, _ = obj.Get("steps")
	}
	steps, err := parseSteps(list)
	if err != nil {
		return nil, err
	}
	sc.Steps = steps
	return sc, nil
}

func parseSteps(v any) ([]Step, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: steps must be a list, got %s", ErrInvalidScenario, value.Classify(v))
	}
	steps := make([]Step, 0, len(items))
	for i, item := range items {
		step, err := parseStep(item)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(v any) (Step, error) {
	obj, ok := v.(*value.Object)
	if !ok {
		return Step{}, fmt.Errorf("%w: a step must be an object, got %s", ErrInvalidScenario, value.Classify(v))
	}
	op, _ := obj.Get("op")
	if value.Classify(op) != value.KindString {
		return Step{}, fmt.Errorf("%w: \"op\" must be a string", ErrInvalidScenario)
	}
	step := Step{Op: value.ToString(op)}
	if args, ok := obj.Get("args"); ok {
		list, ok := args.([]any)
		if !ok {
			// A single argument may be given without a list.
			list = []any{args}
		}
		step.Args = list
	}
	return step, nil
}
