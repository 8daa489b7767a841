package toggling

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dchest/siphash"
	"github.com/joshyorko/previewctl/registry"
)

const (
	fingerprintKey0 = 0x70726576696577
	fingerprintKey1 = 0x746f67676c6521
)

// Request is one apply operation, captured from the shell (or flags) at the
// moment Apply is triggered. Checked only matters for multi parameter
// classes: a parameter missing from it is not written.
type Request struct {
	Class   string
	Action  Action
	Checked map[string]bool
}

// NewRequest returns a request with every parameter of the class checked.
func NewRequest(class string, action Action) Request {
	checked := make(map[string]bool)
	for _, name := range registry.ParametersFor(class) {
		checked[name] = true
	}
	return Request{Class: class, Action: action, Checked: checked}
}

// Without returns a copy of the request with the named parameters unchecked.
func (it Request) Without(names ...string) Request {
	checked := make(map[string]bool, len(it.Checked))
	for name, state := range it.Checked {
		checked[name] = state
	}
	for _, name := range names {
		checked[name] = false
	}
	it.Checked = checked
	return it
}

// Selected lists the parameters to write, in registry order.
func (it Request) Selected(class registry.Class) []string {
	if !class.MultiParameter() {
		return class.ParameterNames()
	}
	result := []string{}
	for _, parameter := range class.Parameters {
		if it.Checked[parameter.Name] {
			result = append(result, parameter.Name)
		}
	}
	return result
}

// Fingerprint identifies equal requests in logs.
func (it Request) Fingerprint() string {
	checked := []string{}
	for name, state := range it.Checked {
		if state {
			checked = append(checked, name)
		}
	}
	sort.Strings(checked)
	content := fmt.Sprintf("%s|%s|%s", it.Class, it.Action, strings.Join(checked, ","))
	return fmt.Sprintf("%016x", siphash.Hash(fingerprintKey0, fingerprintKey1, []byte(content)))
}
