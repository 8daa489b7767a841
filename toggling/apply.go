// Package toggling applies On, Off or Toggle to the preview display
// parameters of every node of one class.
package toggling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joshyorko/previewctl/common"
	"github.com/joshyorko/previewctl/registry"
	"github.com/joshyorko/previewctl/rpc"
)

var (
	ErrUnknownClass = errors.New("unknown node class")
	ErrNothingToDo  = errors.New("no parameter selected")
)

// Gateway is the part of the host RPC client the engine needs.
type Gateway interface {
	FetchNodes(ctx context.Context, class string) ([]rpc.Node, error)
	GetParam(ctx context.Context, node rpc.Node, name string) (string, error)
	SetParam(ctx context.Context, node rpc.Node, name, value string) error
}

type Write struct {
	Node      rpc.Node
	Parameter string
	Value     string
}

type Report struct {
	Request  Request
	Nodes    int
	Writes   []Write
	Failures []error
	Elapsed  common.Duration
}

func (it Report) Summary() string {
	label := strings.ToLower(registry.LabelFor(it.Request.Class))
	summary := fmt.Sprintf("%s: %d parameter writes on %d %s nodes", it.Request.Action.Label(), len(it.Writes), it.Nodes, label)
	if len(it.Failures) > 0 {
		summary = fmt.Sprintf("%s, %d failed", summary, len(it.Failures))
	}
	return summary
}

// Options are all optional. With KeepGoing a failing node/parameter pair is
// skipped instead of aborting the whole apply.
type Options struct {
	KeepGoing bool
	OnPhase   func(Phase)
	OnWrite   func(Write)
}

type handler func(ctx context.Context, it *applier, node rpc.Node, name string) error

var (
	specials = map[string]handler{
		registry.MainHidden: applyMainHidden,
	}
)

type applier struct {
	gateway Gateway
	action  Action
	options Options
	report  *Report
}

func (it *applier) phase(phase Phase) {
	if it.options.OnPhase != nil {
		it.options.OnPhase(phase)
	}
}

func (it *applier) write(ctx context.Context, node rpc.Node, name, value string) error {
	err := it.gateway.SetParam(ctx, node, name, value)
	if err != nil {
		return err
	}
	done := Write{Node: node, Parameter: name, Value: value}
	it.report.Writes = append(it.report.Writes, done)
	common.Trace("Wrote %s=%s on %q", name, value, node.Name)
	if it.options.OnWrite != nil {
		it.options.OnWrite(done)
	}
	return nil
}

func (it *applier) read(ctx context.Context, node rpc.Node, name string) (bool, error) {
	value, err := it.gateway.GetParam(ctx, node, name)
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(value) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return false, &rpc.Error{
		Kind:    rpc.RemoteReplyError,
		Op:      rpc.MethodGetParam,
		Message: fmt.Sprintf("parameter %q of %q has non boolean value %q", name, node.Name, value),
	}
}

func asValue(truth bool) string {
	if truth {
		return "1"
	}
	return "0"
}

func applyPlain(ctx context.Context, it *applier, node rpc.Node, name string) error {
	target := it.action == On
	if it.action == Toggle {
		current, err := it.read(ctx, node, name)
		if err != nil {
			return err
		}
		target = !current
	}
	return it.write(ctx, node, name, asValue(target))
}

// applyMainHidden resets the preview mode flags before writing the hide
// flag itself. Toggle shows hidden nodes and hides visible ones.
func applyMainHidden(ctx context.Context, it *applier, node rpc.Node, name string) error {
	show := it.action == On
	if it.action == Toggle {
		hidden, err := it.read(ctx, node, name)
		if err != nil {
			return err
		}
		show = hidden
	}
	for _, sibling := range registry.HiddenResetSet {
		value := "0"
		if show && sibling == registry.Textured {
			value = "1"
		}
		err := it.write(ctx, node, sibling, value)
		if err != nil {
			return err
		}
	}
	return it.write(ctx, node, name, asValue(!show))
}

func handlerFor(name string) handler {
	if special, ok := specials[name]; ok {
		return special
	}
	return applyPlain
}

// Apply fetches the nodes of the requested class and writes the selected
// parameters node by node. Without KeepGoing it stops at the first failure;
// writes done before it stay in place.
func Apply(ctx context.Context, gateway Gateway, request Request, options Options) (Report, error) {
	report := Report{Request: request}
	class, ok := registry.Lookup(request.Class)
	if !ok {
		return report, fmt.Errorf("%w: %q", ErrUnknownClass, request.Class)
	}
	selected := request.Selected(class)
	if len(selected) == 0 {
		return report, fmt.Errorf("%w for %s", ErrNothingToDo, class.Label)
	}

	stopwatch := common.Stopwatch("apply %s", request.Fingerprint())
	it := &applier{gateway: gateway, action: request.Action, options: options, report: &report}
	err := it.run(ctx, class, selected)
	report.Elapsed = stopwatch.Debug()
	it.phase(Idle)
	return report, err
}

func (it *applier) run(ctx context.Context, class registry.Class, selected []string) error {
	common.Debug("Apply %s %s %v", it.action, class.Name, selected)
	it.phase(Fetching)
	nodes, err := it.gateway.FetchNodes(ctx, class.Name)
	if err != nil {
		return err
	}
	it.report.Nodes = len(nodes)
	if len(nodes) == 0 {
		common.Log("No %s found in the project.", strings.ToLower(class.Label))
		return nil
	}

	it.phase(Applying)
	for _, node := range nodes {
		for _, name := range selected {
			err := handlerFor(name)(ctx, it, node, name)
			if err == nil {
				continue
			}
			if !it.options.KeepGoing {
				return err
			}
			common.Uncritical(node.Name, err)
			it.report.Failures = append(it.report.Failures, err)
		}
	}
	return errors.Join(it.report.Failures...)
}
