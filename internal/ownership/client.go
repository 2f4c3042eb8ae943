// Package ownership checks NFT holdings through the Helius DAS getAssetsByOwner RPC.
package ownership

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/metrics"
	"github.com/worldicons/worldicons-bot/internal/utils"
)

// Defaults for the Helius mainnet RPC
const (
	DefaultEndpoint = "https://mainnet.helius-rpc.com/"
	DefaultTimeout  = 15 * time.Second

	// PageSize is the number of assets requested; only the first page is inspected.
	PageSize = 100

	rpcRequestID    = "wic-verify"
	rpcMethod       = "getAssetsByOwner"
	groupCollection = "collection"
	errorBodyLength = 200 // runes
)

// Asset is the subset of a DAS asset needed to resolve its collection.
type Asset struct {
	ID      string `json:"id"`
	Content struct {
		Metadata map[string]any `json:"metadata"`
	} `json:"content"`
	Grouping []Group `json:"grouping"`
}

// Group is one grouping entry of an asset.
type Group struct {
	GroupKey   string `json:"group_key"`
	GroupValue string `json:"group_value"`
}

// CollectionName resolves the asset's collection from its metadata, falling back to
// the first grouping entry keyed "collection".
func (a Asset) CollectionName() string {
	if v, ok := a.Content.Metadata["collection"]; ok {
		if name := cast.ToString(v); name != "" {
			return name
		}
	}
	for _, g := range a.Grouping {
		if g.GroupKey == groupCollection {
			return g.GroupValue
		}
	}
	return ""
}

// Checker is what the verify command needs from an ownership source.
type Checker interface {
	OwnsCollection(ctx context.Context, wallet, collection string) (bool, error)
}

// Client calls the Helius RPC endpoint.
type Client struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a Helius client. An empty apiKey is reported at call time.
func NewClient(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint: endpoint,
		APIKey:   apiKey,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      string    `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	OwnerAddress string `json:"ownerAddress"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

type rpcResponse struct {
	Result *struct {
		Items []Asset `json:"items"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AssetsByOwner returns the first page of assets held by wallet.
func (c *Client) AssetsByOwner(ctx context.Context, wallet string) ([]Asset, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: HELIUS_API_KEY is not set", domain.ErrConfiguration)
	}

	start := time.Now()
	assets, err := c.assetsByOwner(ctx, wallet)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.RecordExternal(metrics.ServiceHelius, outcome, time.Since(start).Seconds())
	return assets, err
}

func (c *Client) assetsByOwner(ctx context.Context, wallet string) ([]Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	endpoint, err := url.Parse(c.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid Helius endpoint: %v", domain.ErrConfiguration, err)
	}
	query := endpoint.Query()
	query.Set("api-key", c.APIKey)
	endpoint.RawQuery = query.Encode()

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      rpcRequestID,
		Method:  rpcMethod,
		Params: rpcParams{
			OwnerAddress: strings.TrimSpace(wallet),
			Page:         1,
			Limit:        PageSize,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrExternalService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, redact(err.Error(), c.APIKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, (errorBodyLength+1)*utf8.UTFMax))
		snippet := utils.Truncate(string(raw), errorBodyLength)
		return nil, fmt.Errorf("%w: Helius HTTP %d: %s", domain.ErrExternalService, resp.StatusCode, snippet)
	}

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode Helius response: %v", domain.ErrExternalService, err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("%w: Helius RPC error %d: %s", domain.ErrExternalService, decoded.Error.Code, decoded.Error.Message)
	}
	if decoded.Result == nil {
		return nil, nil
	}
	return decoded.Result.Items, nil
}

// OwnsCollection reports whether any asset of wallet's first page belongs to collection.
// Names are compared case and whitespace insensitively, as a substring of the asset's collection.
func (c *Client) OwnsCollection(ctx context.Context, wallet, collection string) (bool, error) {
	assets, err := c.AssetsByOwner(ctx, wallet)
	if err != nil {
		return false, err
	}
	return HoldsCollection(assets, collection), nil
}

// HoldsCollection reports whether any of assets matches collection.
func HoldsCollection(assets []Asset, collection string) bool {
	target := utils.Normalize(collection)
	for _, a := range assets {
		if strings.Contains(utils.Normalize(a.CollectionName()), target) {
			return true
		}
	}
	return false
}

// redact keeps the API key out of error messages shown to users; url.Error includes the full URL.
func redact(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, "***")
}
