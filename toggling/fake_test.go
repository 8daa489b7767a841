package toggling_test

import (
	"context"

	"github.com/joshyorko/previewctl/rpc"
	"github.com/joshyorko/previewctl/toggling"
)

type fakeGateway struct {
	nodes    []rpc.Node
	values   map[string]map[string]string
	fetchErr error
	failures map[string]error
	fetches  int
	reads    int
	sets     []toggling.Write
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		values:   make(map[string]map[string]string),
		failures: make(map[string]error),
	}
}

func (it *fakeGateway) add(handle string, values map[string]string) rpc.Node {
	node := rpc.Node{Handle: handle, Name: "node " + handle}
	it.nodes = append(it.nodes, node)
	it.values[handle] = values
	return node
}

func (it *fakeGateway) failOn(node rpc.Node, name string, err error) {
	it.failures[node.Handle+"/"+name] = err
}

func (it *fakeGateway) FetchNodes(ctx context.Context, class string) ([]rpc.Node, error) {
	it.fetches++
	if it.fetchErr != nil {
		return nil, it.fetchErr
	}
	return it.nodes, nil
}

func (it *fakeGateway) GetParam(ctx context.Context, node rpc.Node, name string) (string, error) {
	it.reads++
	return it.values[node.Handle][name], nil
}

func (it *fakeGateway) SetParam(ctx context.Context, node rpc.Node, name, value string) error {
	if err, ok := it.failures[node.Handle+"/"+name]; ok {
		return err
	}
	it.sets = append(it.sets, toggling.Write{Node: node, Parameter: name, Value: value})
	it.values[node.Handle][name] = value
	return nil
}

func (it *fakeGateway) written() []string {
	result := []string{}
	for _, write := range it.sets {
		result = append(result, write.Node.Handle+"/"+write.Parameter+"="+write.Value)
	}
	return result
}
