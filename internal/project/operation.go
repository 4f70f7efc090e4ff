package project

import (
	"fmt"
	"strconv"
	"strings"
)

// OperationType is the closed set of operations the engine can execute.
type OperationType string

const (
	CleanSlate      OperationType = "clean_slate"
	Save            OperationType = "save"
	Update          OperationType = "update"
	Install         OperationType = "install"
	Build           OperationType = "build"
	Test            OperationType = "test"
	Run             OperationType = "run"
	Reset           OperationType = "reset"
	PodInstall      OperationType = "pod_install"
	Fresh           OperationType = "fresh"
	SwitchChangeset OperationType = "switch_changeset"
	RunScript       OperationType = "run_script"
	Custom          OperationType = "custom"
)

// OperationTypes lists every operation type in display order.
var OperationTypes = []OperationType{
	CleanSlate, Save, Update, Install, Build, Test, Run, Reset,
	PodInstall, Fresh, SwitchChangeset, RunScript, Custom,
}

// Valid reports whether t is a known operation type.
func (t OperationType) Valid() bool {
	for _, known := range OperationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsGitWorkflow reports whether t mutates repository state through git.
// These operations run under the per-project mutation lock.
func (t OperationType) IsGitWorkflow() bool {
	switch t {
	case CleanSlate, Save, Update, Fresh, SwitchChangeset:
		return true
	}
	return false
}

// ParseOperationType parses s, accepting "-" as an alias for "_".
func ParseOperationType(s string) (OperationType, error) {
	t := OperationType(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if !t.Valid() {
		names := make([]string, len(OperationTypes))
		for i, known := range OperationTypes {
			names[i] = string(known)
		}
		return "", fmt.Errorf("unknown operation type %q (valid: %s)", s, strings.Join(names, ", "))
	}
	return t, nil
}

// Parameter keys understood by the engine and toolchain adapters.
const (
	ParamPlatform       = "platform"
	ParamDevice         = "device"
	ParamMode           = "mode"
	ParamPackageManager = "packageManager"
	ParamBranchName     = "branchName"
	ParamBranchType     = "branchType"
	ParamChangesetName  = "changesetName"
	ParamCommand        = "command"
	ParamName           = "name"
	ParamScriptName     = "scriptName"
	ParamTestFile       = "testFile"
	ParamCoverage       = "coverage"
	ParamMessage        = "message"
)

// Params is the free-form parameter map of an Operation.
type Params map[string]string

// Get returns the value for key, or "" when absent. Safe on a nil map.
func (p Params) Get(key string) string {
	return p[key]
}

// Bool parses the value for key as a boolean. Missing or invalid values are false.
func (p Params) Bool(key string) bool {
	v, err := strconv.ParseBool(p[key])
	return err == nil && v
}

// Operation is a typed request to do one thing to a project.
type Operation struct {
	Type        OperationType `json:"type"`
	Params      Params        `json:"params,omitempty"`
	Description string        `json:"description,omitempty"`
}

// NewOperation builds an operation from key/value pairs.
// A trailing key without value is ignored.
func NewOperation(t OperationType, kv ...string) Operation {
	op := Operation{Type: t}
	if len(kv) > 1 {
		op.Params = make(Params, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			op.Params[kv[i]] = kv[i+1]
		}
	}
	return op
}

// Label returns the description if set, otherwise the type.
func (o Operation) Label() string {
	if o.Description != "" {
		return o.Description
	}
	return string(o.Type)
}

// Resolve returns the first non-empty value of the explicit parameter,
// the configured default and the hardcoded fallback, in that order.
func Resolve(explicit, configured, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if configured != "" {
		return configured
	}
	return fallback
}
