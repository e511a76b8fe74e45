// Package http provides a Provider backed by the tracked chain's RPC
// /header endpoint.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/celestiaorg/zkblobstream/light/provider"
)

const defaultTimeout = 10 * time.Second

type headerResponse struct {
	Result struct {
		Header struct {
			// Tendermint RPC encodes heights as decimal strings.
			Height string `json:"height"`
		} `json:"header"`
	} `json:"result"`
}

type httpProvider struct {
	remote string
	client *http.Client
}

var _ provider.Provider = (*httpProvider)(nil)

// New returns a Provider that queries GET {remote}/header for the chain head.
func New(remote string) provider.Provider {
	return &httpProvider{
		remote: remote,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (p *httpProvider) LatestHeight(ctx context.Context) (uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.remote+"/header", nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", provider.ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", provider.ErrNoResponse, resp.StatusCode)
	}

	var hr headerResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return 0, fmt.Errorf("decoding header response: %w", err)
	}

	height, err := strconv.ParseUint(hr.Result.Header.Height, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing header height %q: %w", hr.Result.Header.Height, err)
	}
	return height, nil
}
