package operations

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joshyorko/previewctl/common"
	"github.com/joshyorko/previewctl/registry"
	"github.com/joshyorko/previewctl/rpc"
	ps "github.com/mitchellh/go-ps"
)

var (
	processLister = ps.Processes
)

type NodeFetcher interface {
	FetchNodes(ctx context.Context, class string) ([]rpc.Node, error)
}

type HostProcess struct {
	Pid        int
	Executable string
}

type Check struct {
	Name   string
	Ok     bool
	Detail string
}

type Diagnosis struct {
	Endpoint string
	Checks   []Check
}

func (it *Diagnosis) add(name string, ok bool, form string, details ...interface{}) {
	it.Checks = append(it.Checks, Check{Name: name, Ok: ok, Detail: fmt.Sprintf(form, details...)})
}

func (it Diagnosis) Healthy() bool {
	for _, check := range it.Checks {
		if !check.Ok {
			return false
		}
	}
	return true
}

// HostProcesses finds running processes whose executable name contains the
// pattern, ignoring case and extension.
func HostProcesses(pattern string) ([]HostProcess, error) {
	wanted := strings.ToLower(strings.TrimSpace(pattern))
	processes, err := processLister()
	if err != nil {
		return nil, err
	}
	result := []HostProcess{}
	for _, process := range processes {
		executable := process.Executable()
		name := strings.ToLower(strings.TrimSuffix(executable, filepath.Ext(executable)))
		if strings.Contains(name, wanted) {
			result = append(result, HostProcess{Pid: process.Pid(), Executable: executable})
		}
	}
	return result, nil
}

// Diagnose checks the host process, the RPC endpoint and counts nodes of
// every registered class. Node counting stops at the first failure.
func Diagnose(ctx context.Context, fetcher NodeFetcher, endpoint, hostProcess string) Diagnosis {
	result := Diagnosis{Endpoint: endpoint}

	if len(strings.TrimSpace(hostProcess)) > 0 {
		found, err := HostProcesses(hostProcess)
		switch {
		case err != nil:
			result.add("host process", false, "listing processes failed: %v", err)
		case len(found) == 0:
			result.add("host process", false, "no running process matches %q", hostProcess)
		default:
			result.add("host process", true, "%s (pid %d)", found[0].Executable, found[0].Pid)
		}
	}

	for _, class := range registry.Classes() {
		stopwatch := common.Stopwatch("count %s", class.Name)
		nodes, err := fetcher.FetchNodes(ctx, class.Name)
		if err != nil {
			title, message := rpc.Describe(err)
			result.add("endpoint", false, "%s: %s", title, message)
			return result
		}
		result.add(class.Name, true, "%d nodes in %ss", len(nodes), stopwatch.Debug())
	}
	return result
}
