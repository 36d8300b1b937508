// Package aptos estimates the gas unit price from an Aptos fullnode.
package aptos

import (
	"context"
	"fmt"
	"time"

	"github.com/fd1az/aptos-arbitrage/internal/apperror"
	"github.com/fd1az/aptos-arbitrage/internal/httpclient"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
)

// gasEstimate mirrors the fullnode /estimate_gas_price response.
type gasEstimate struct {
	GasEstimate            int64  `json:"gas_estimate"`
	DeprioritizedEstimate  *int64 `json:"deprioritized_gas_estimate,omitempty"`
	PrioritizedGasEstimate *int64 `json:"prioritized_gas_estimate,omitempty"`
}

// Provider implements app.GasProvider on the fullnode REST API.
type Provider struct {
	client httpclient.Client
	log    logger.LoggerInterface
}

// NewProvider creates the provider against a fullnode base URL, e.g.
// https://fullnode.mainnet.aptoslabs.com/v1.
func NewProvider(fullnodeURL string, log logger.LoggerInterface) (*Provider, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("aptos-fullnode"),
		httpclient.WithBaseURL(fullnodeURL),
		httpclient.WithRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client, log: log}, nil
}

// Name identifies the provider in logs.
func (p *Provider) Name() string { return "aptos-fullnode" }

// GasUnitPrice returns the fullnode's current gas unit price estimate in
// octas.
func (p *Provider) GasUnitPrice(ctx context.Context) (int64, error) {
	var estimate gasEstimate
	resp, err := p.client.NewRequest().
		SetResult(&estimate).
		Get(ctx, "/estimate_gas_price")
	if err != nil {
		return 0, apperror.External(apperror.CodeGasFetchFailed, "fullnode estimate_gas_price", err)
	}
	if resp.IsError() {
		return 0, apperror.External(apperror.CodeGasFetchFailed, "fullnode estimate_gas_price",
			fmt.Errorf("fullnode returned %s", resp.Status))
	}
	if estimate.GasEstimate <= 0 {
		return 0, apperror.New(apperror.CodeGasFetchFailed, apperror.WithContext("non-positive gas estimate"))
	}
	return estimate.GasEstimate, nil
}
