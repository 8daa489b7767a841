package rpc

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/joshyorko/previewctl/common"
)

type httpTransport struct {
	endpoint string
	client   *http.Client
}

func newHttpTransport(endpoint string, timeout time.Duration) *httpTransport {
	return &httpTransport{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (it *httpTransport) Endpoint() string {
	return it.endpoint
}

func (it *httpTransport) Close() error {
	it.client.CloseIdleConnections()
	return nil
}

func (it *httpTransport) Roundtrip(ctx context.Context, body []byte) ([]byte, error) {
	stopwatch := common.Stopwatch("roundtrip")
	defer func() {
		common.Trace("POST %s took %s", it.endpoint, stopwatch.Elapsed())
	}()
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, it.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: ConnectionError, Message: err.Error(), Err: err}
	}
	request.Header.Add("Content-Type", "application/json")
	request.Header.Add("User-Agent", common.UserAgent())
	response, err := it.client.Do(request)
	if err != nil {
		return nil, classify(err)
	}
	defer response.Body.Close()
	reply, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, classify(err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		common.Debug("POST %s => %d (%s)", it.endpoint, response.StatusCode, string(reply))
		return nil, replyError("host replied with HTTP status %d", response.StatusCode)
	}
	return reply, nil
}
