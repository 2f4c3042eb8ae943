package ownership

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldicons/worldicons-bot/internal/domain"
)

const assetsResponse = `{
	"jsonrpc": "2.0",
	"id": "wic-verify",
	"result": {
		"total": 2,
		"limit": 100,
		"page": 1,
		"items": [
			{"id": "one", "content": {"metadata": {"name": "Other #1"}}, "grouping": [{"group_key": "collection", "group_value": "OtherColl"}]},
			{"id": "two", "content": {"metadata": {"name": "WIC #7", "collection": "World Icons Cards S1"}}, "grouping": []}
		]
	}
}`

func TestAssetsByOwner_Request(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.URL.Query().Get("api-key"))

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "getAssetsByOwner", req.Method)
		assert.Equal(t, "Wallet111", req.Params.OwnerAddress)
		assert.Equal(t, 1, req.Params.Page)
		assert.Equal(t, PageSize, req.Params.Limit)

		_, _ = w.Write([]byte(assetsResponse))
	}))
	defer srv.Close()

	assets, err := NewClient(srv.URL, "secret").AssetsByOwner(context.Background(), " Wallet111 ")
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "OtherColl", assets[0].CollectionName())
	assert.Equal(t, "World Icons Cards S1", assets[1].CollectionName())
}

func TestOwnsCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(assetsResponse))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k")

	ok, err := client.OwnsCollection(context.Background(), "w", "  world   ICONS cards ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.OwnsCollection(context.Background(), "w", "Bored Apes")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssetsByOwner_MissingAPIKey(t *testing.T) {
	_, err := NewClient("", "").AssetsByOwner(context.Background(), "w")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestAssetsByOwner_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"non-success status", http.StatusUnauthorized, `{"error": "bad key"}`, "HTTP 401"},
		{"rpc error", http.StatusOK, `{"jsonrpc": "2.0", "error": {"code": -32602, "message": "invalid owner"}}`, "invalid owner"},
		{"malformed body", http.StatusOK, `not json`, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "k").AssetsByOwner(context.Background(), "w")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExternalService)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestAssetsByOwner_ErrorBodyCutOnRuneBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("x" + strings.Repeat("é", 300)))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").AssetsByOwner(context.Background(), "w")
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "x"+strings.Repeat("é", errorBodyLength-1))
	assert.NotContains(t, err.Error(), strings.Repeat("é", errorBodyLength))
}

func TestAssetsByOwner_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	_, err := NewClient(endpoint, "super-secret-key").AssetsByOwner(context.Background(), "w")
	require.ErrorIs(t, err, domain.ErrExternalService)
	assert.NotContains(t, err.Error(), "super-secret-key")
}

func TestAssetsByOwner_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc": "2.0", "result": {"items": []}}`))
	}))
	defer srv.Close()

	ok, err := NewClient(srv.URL, "k").OwnsCollection(context.Background(), "w", "World Icons Cards")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollectionName(t *testing.T) {
	var a Asset
	assert.Empty(t, a.CollectionName())

	a.Grouping = []Group{{GroupKey: "creator", GroupValue: "x"}, {GroupKey: "collection", GroupValue: "Coll"}}
	assert.Equal(t, "Coll", a.CollectionName())

	a.Content.Metadata = map[string]any{"collection": ""}
	assert.Equal(t, "Coll", a.CollectionName(), "empty metadata collection falls back to grouping")

	a.Content.Metadata = map[string]any{"collection": "Meta"}
	assert.Equal(t, "Meta", a.CollectionName())
}
