package rpc

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joshyorko/previewctl/common"
)

// websocketTransport keeps one connection open and redials after a failure.
type websocketTransport struct {
	endpoint string
	dialer   *websocket.Dialer
	lock     sync.Mutex
	conn     *websocket.Conn
}

func newWebsocketTransport(endpoint string, timeout time.Duration) *websocketTransport {
	return &websocketTransport{
		endpoint: endpoint,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: timeout,
		},
	}
}

func (it *websocketTransport) Endpoint() string {
	return it.endpoint
}

func (it *websocketTransport) Close() error {
	it.lock.Lock()
	defer it.lock.Unlock()
	return it.drop()
}

func (it *websocketTransport) drop() error {
	if it.conn == nil {
		return nil
	}
	err := it.conn.Close()
	it.conn = nil
	return err
}

func (it *websocketTransport) connect(ctx context.Context) error {
	if it.conn != nil {
		return nil
	}
	header := http.Header{}
	header.Add("User-Agent", common.UserAgent())
	conn, _, err := it.dialer.DialContext(ctx, it.endpoint, header)
	if err != nil {
		return classify(err)
	}
	common.Debug("Connected to %s", it.endpoint)
	it.conn = conn
	return nil
}

func (it *websocketTransport) Roundtrip(ctx context.Context, body []byte) ([]byte, error) {
	it.lock.Lock()
	defer it.lock.Unlock()

	err := it.connect(ctx)
	if err != nil {
		return nil, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	it.conn.SetWriteDeadline(deadline)
	it.conn.SetReadDeadline(deadline)

	err = it.conn.WriteMessage(websocket.TextMessage, body)
	if err != nil {
		it.drop()
		return nil, classify(err)
	}
	_, reply, err := it.conn.ReadMessage()
	if err != nil {
		it.drop()
		return nil, classify(err)
	}
	return reply, nil
}
