// Package rpctest provides an in-process stand-in for the host application
// RPC server, usable over HTTP and WebSocket.
package rpctest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/joshyorko/previewctl/rpc"
)

const (
	RootHandle = `project:0`

	CodeInvalidParams  = -32602
	CodeMethodNotFound = -32601
)

type Call struct {
	Method string
	Params map[string]string
}

type fault struct {
	code    int
	message string
}

type Host struct {
	lock    sync.Mutex
	order   []string
	classes map[string][]rpc.Node
	params  map[string]map[string]string
	faults  map[string]fault
	calls   []Call
	garbled bool
}

func NewHost() *Host {
	return &Host{
		classes: make(map[string][]rpc.Node),
		params:  make(map[string]map[string]string),
		faults:  make(map[string]fault),
	}
}

// AddNode creates a node of the class with initial parameter values.
func (it *Host) AddNode(class, name string, params map[string]string) rpc.Node {
	it.lock.Lock()
	defer it.lock.Unlock()

	node := rpc.Node{Handle: fmt.Sprintf("%s:%d", class, len(it.order)+1), Name: name}
	it.order = append(it.order, node.Handle)
	it.classes[class] = append(it.classes[class], node)
	values := make(map[string]string)
	for key, value := range params {
		values[key] = value
	}
	it.params[node.Handle] = values
	return node
}

func (it *Host) Param(node rpc.Node, name string) string {
	it.lock.Lock()
	defer it.lock.Unlock()
	return it.params[node.Handle][name]
}

// Fail makes every following call of method fail with a remote fault.
func (it *Host) Fail(method string, code int, message string) {
	it.lock.Lock()
	defer it.lock.Unlock()
	it.faults[method] = fault{code: code, message: message}
}

// Garble makes the host answer with bytes that are not JSON.
func (it *Host) Garble(state bool) {
	it.lock.Lock()
	defer it.lock.Unlock()
	it.garbled = state
}

func (it *Host) Calls(method string) []Call {
	it.lock.Lock()
	defer it.lock.Unlock()
	result := []Call{}
	for _, call := range it.calls {
		if len(method) == 0 || call.Method == method {
			result = append(result, call)
		}
	}
	return result
}

type request struct {
	ID     uint64            `json:"id"`
	Method string            `json:"method"`
	Params map[string]string `json:"params"`
}

type answer struct {
	Version string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Process answers one encoded JSON-RPC request.
func (it *Host) Process(raw []byte) []byte {
	it.lock.Lock()
	defer it.lock.Unlock()

	if it.garbled {
		return []byte("<html>not json</html>")
	}
	var incoming request
	err := json.Unmarshal(raw, &incoming)
	if err != nil {
		return it.encode(answer{Version: "2.0", Error: map[string]interface{}{"code": -32700, "message": err.Error()}})
	}
	it.calls = append(it.calls, Call{Method: incoming.Method, Params: incoming.Params})
	result, failure := it.dispatch(incoming)
	response := answer{Version: "2.0", ID: incoming.ID}
	if failure != nil {
		response.Error = map[string]interface{}{"code": failure.code, "message": failure.message}
	} else {
		response.Result = result
	}
	return it.encode(response)
}

func (it *Host) encode(response answer) []byte {
	blob, _ := json.Marshal(response)
	return blob
}

func (it *Host) dispatch(incoming request) (interface{}, *fault) {
	if failure, ok := it.faults[incoming.Method]; ok {
		return nil, &failure
	}
	params := incoming.Params
	switch incoming.Method {
	case rpc.MethodRoot:
		return map[string]string{"handle": RootHandle}, nil
	case rpc.MethodChildren:
		if params["handle"] != RootHandle {
			return nil, &fault{CodeInvalidParams, fmt.Sprintf("unknown project %q", params["handle"])}
		}
		nodes := append([]rpc.Node{}, it.classes[params["class"]]...)
		return nodes, nil
	case rpc.MethodGetParam:
		values, ok := it.params[params["handle"]]
		if !ok {
			return nil, &fault{CodeInvalidParams, fmt.Sprintf("unknown node %q", params["handle"])}
		}
		value, ok := values[params["name"]]
		if !ok {
			return nil, &fault{CodeInvalidParams, fmt.Sprintf("unknown parameter %q", params["name"])}
		}
		return value, nil
	case rpc.MethodSetParam:
		values, ok := it.params[params["handle"]]
		if !ok {
			return nil, &fault{CodeInvalidParams, fmt.Sprintf("unknown node %q", params["handle"])}
		}
		values[params["name"]] = params["value"]
		return true, nil
	}
	return nil, &fault{CodeMethodNotFound, fmt.Sprintf("unknown method %q", incoming.Method)}
}

// Classes lists node classes that have at least one node.
func (it *Host) Classes() []string {
	it.lock.Lock()
	defer it.lock.Unlock()
	result := make([]string, 0, len(it.classes))
	for class := range it.classes {
		result = append(result, class)
	}
	sort.Strings(result)
	return result
}

func (it *Host) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if websocket.IsWebSocketUpgrade(request) {
		it.serveWebsocket(writer, request)
		return
	}
	if request.Method != http.MethodPost {
		http.Error(writer, "POST only", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(request.Body)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.Write(it.Process(body))
}

var upgrader = websocket.Upgrader{}

func (it *Host) serveWebsocket(writer http.ResponseWriter, request *http.Request) {
	conn, err := upgrader.Upgrade(writer, request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		kind, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		err = conn.WriteMessage(kind, it.Process(message))
		if err != nil {
			return
		}
	}
}
