// Package rpc talks JSON-RPC 2.0 to the host rendering application. It
// mirrors the host object model: a project root, children filtered by node
// class and named parameters on each node.
package rpc

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/joshyorko/previewctl/common"
)

const (
	MethodRoot     = `project.root`
	MethodChildren = `project.children_filtered_by_class`
	MethodGetParam = `node.get_param`
	MethodSetParam = `node.set_param`
)

type envelope struct {
	Version string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type fault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type reply struct {
	Version string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *fault          `json:"error,omitempty"`
}

// Node is a handle to a live object in the host project.
type Node struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

type Project struct {
	client *Client
	Handle string `json:"handle"`
}

type Client struct {
	transport Transport
	timeout   time.Duration
	sequence  atomic.Uint64
}

func NewClient(transport Transport, timeout time.Duration) *Client {
	return &Client{
		transport: transport,
		timeout:   timeout,
	}
}

// Dial builds a client for the endpoint, choosing transport by scheme.
func Dial(endpoint string, timeout time.Duration) (*Client, error) {
	transport, err := NewTransport(endpoint, timeout)
	if err != nil {
		return nil, err
	}
	return NewClient(transport, timeout), nil
}

func (it *Client) Endpoint() string {
	return it.transport.Endpoint()
}

func (it *Client) Close() error {
	return it.transport.Close()
}

// Call does one request/reply exchange. Result may be nil when the caller
// does not care about the reply payload.
func (it *Client) Call(ctx context.Context, method string, params interface{}, result interface{}) (err error) {
	identity := it.sequence.Add(1)
	defer func() {
		if failure, ok := err.(*Error); ok && len(failure.Op) == 0 {
			failure.Op = method
		}
	}()

	body, err := json.Marshal(envelope{Version: "2.0", ID: identity, Method: method, Params: params})
	if err != nil {
		return &Error{Kind: RemoteReplyError, Message: err.Error(), Err: err}
	}
	if it.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, it.timeout)
		defer cancel()
	}
	common.Trace("-> %d %s %s", identity, method, body)
	raw, err := it.transport.Roundtrip(ctx, body)
	if err != nil {
		return classify(err)
	}
	common.Trace("<- %d %s", identity, raw)

	var answer reply
	err = json.Unmarshal(raw, &answer)
	if err != nil {
		return replyError("malformed reply: %v", err)
	}
	if answer.ID != identity {
		return replyError("reply id %d does not match request id %d", answer.ID, identity)
	}
	if answer.Error != nil {
		return &Error{Kind: RemoteApiError, Code: answer.Error.Code, Message: answer.Error.Message}
	}
	if result == nil {
		return nil
	}
	if len(answer.Result) == 0 {
		return replyError("reply has no result")
	}
	err = json.Unmarshal(answer.Result, result)
	if err != nil {
		return replyError("unexpected result: %v", err)
	}
	return nil
}

func (it *Client) Root(ctx context.Context) (*Project, error) {
	project := &Project{client: it}
	err := it.Call(ctx, MethodRoot, nil, project)
	if err != nil {
		return nil, err
	}
	if len(project.Handle) == 0 {
		return nil, &Error{Kind: RemoteReplyError, Op: MethodRoot, Message: "project root has no handle"}
	}
	return project, nil
}

func (it *Project) ChildrenFilteredByClass(ctx context.Context, class string) ([]Node, error) {
	params := map[string]string{"handle": it.Handle, "class": class}
	nodes := []Node{}
	err := it.client.Call(ctx, MethodChildren, params, &nodes)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// FetchNodes resolves the project root and returns its nodes of the class.
func (it *Client) FetchNodes(ctx context.Context, class string) ([]Node, error) {
	project, err := it.Root(ctx)
	if err != nil {
		return nil, err
	}
	return project.ChildrenFilteredByClass(ctx, class)
}

func (it *Client) GetParam(ctx context.Context, node Node, name string) (string, error) {
	params := map[string]string{"handle": node.Handle, "name": name}
	var value string
	err := it.Call(ctx, MethodGetParam, params, &value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (it *Client) SetParam(ctx context.Context, node Node, name, value string) error {
	params := map[string]string{"handle": node.Handle, "name": name, "value": value}
	return it.Call(ctx, MethodSetParam, params, nil)
}
