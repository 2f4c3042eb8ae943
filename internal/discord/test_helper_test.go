package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/worldicons/worldicons-bot/internal/cards"
	"github.com/worldicons/worldicons-bot/internal/pricing"
)

const (
	testGuildID = "111111111111111111"
	testUserID  = "222222222222222222"
	testRoleID  = "333333333333333333"
	testAppID   = "444444444444444444"
)

const alphaBeta = `[
	{"key": "a", "name": "Alpha", "uri": "ipfs://a", "image_url": "https://img/a.png", "weight": 70},
	{"key": "b", "name": "Beta", "weight": 30}
]`

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// CapturedRequest is one Discord REST call seen by the mock transport.
type CapturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// route overrides the mock answer for requests matching method and a path fragment.
type route struct {
	method   string
	contains string
	status   int
	body     string
}

// TestContext holds a Discord session whose REST traffic never leaves the process.
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
	Services     *Services
	DataDir      string

	mu       sync.Mutex
	requests []CapturedRequest
	routes   []route
}

// SetupTestContext sets up the test environment:
// 1. Card data in a temp dir (Alpha/Beta unless overridden)
// 2. Mock Discord Session (with intercepted HTTP client)
// 3. Services wired to the repository
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	dir := t.TempDir()
	writeCards(t, dir, alphaBeta)
	repo, err := cards.NewRepository(cards.NewLoader(dir))
	require.NoError(t, err)

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	ctx := &TestContext{
		Session: session,
		DataDir: dir,
		Services: &Services{
			Cards:           repo,
			CollectionName:  "World Icons Cards",
			CollectorRoleID: testRoleID,
		},
	}

	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}

			ctx.mu.Lock()
			ctx.requests = append(ctx.requests, CapturedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
			status, respBody := http.StatusOK, "{}"
			for _, r := range ctx.routes {
				if r.method == req.Method && strings.Contains(req.URL.Path, r.contains) {
					status, respBody = r.status, r.body
				}
			}
			ctx.mu.Unlock()

			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Request:    req,
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	return ctx
}

// Route makes requests matching method and pathFragment answer with status and body.
func (c *TestContext) Route(method, pathFragment string, status int, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes = append(c.routes, route{method: method, contains: pathFragment, status: status, body: body})
}

// Requests returns every captured request.
func (c *TestContext) Requests() []CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CapturedRequest(nil), c.requests...)
}

// Responses decodes every interaction callback.
func (c *TestContext) Responses(t *testing.T) []discordgo.InteractionResponse {
	t.Helper()
	var out []discordgo.InteractionResponse
	for _, r := range c.Requests() {
		if r.Method == http.MethodPost && strings.HasSuffix(r.Path, "/callback") {
			var resp discordgo.InteractionResponse
			require.NoError(t, json.Unmarshal(r.Body, &resp))
			out = append(out, resp)
		}
	}
	return out
}

// Followups decodes every follow-up message.
func (c *TestContext) Followups(t *testing.T) []discordgo.WebhookParams {
	t.Helper()
	var out []discordgo.WebhookParams
	for _, r := range c.Requests() {
		if r.Method == http.MethodPost && strings.Contains(r.Path, "/webhooks/") {
			var params discordgo.WebhookParams
			require.NoError(t, json.Unmarshal(r.Body, &params))
			out = append(out, params)
		}
	}
	return out
}

// RoleGrants returns the paths of every role-add request.
func (c *TestContext) RoleGrants() []string {
	var out []string
	for _, r := range c.Requests() {
		if r.Method == http.MethodPut && strings.Contains(r.Path, "/roles/") {
			out = append(out, r.Path)
		}
	}
	return out
}

// OnlyResponse asserts exactly one callback was sent and returns it.
func (c *TestContext) OnlyResponse(t *testing.T) discordgo.InteractionResponse {
	t.Helper()
	responses := c.Responses(t)
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Data)
	return responses[0]
}

// ServeRoles makes the guild role listing return the collector role.
func (c *TestContext) ServeRoles(roleIDs ...string) {
	roles := make([]*discordgo.Role, 0, len(roleIDs))
	for _, id := range roleIDs {
		roles = append(roles, &discordgo.Role{ID: id, Name: "Collectionneur"})
	}
	body, _ := json.Marshal(roles)
	c.Route(http.MethodGet, "/guilds/"+testGuildID+"/roles", http.StatusOK, string(body))
}

func writeCards(t *testing.T, dir, cardsJSON string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cards.CardsFileName), []byte(cardsJSON), 0o644))
}

// newInteraction builds a guild slash-command interaction with string options.
func newInteraction(name string, options map[string]string) *discordgo.InteractionCreate {
	opts := make([]*discordgo.ApplicationCommandInteractionDataOption, 0, len(options))
	for k, v := range options {
		opts = append(opts, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  k,
			Type:  discordgo.ApplicationCommandOptionString,
			Value: v,
		})
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:      "interaction-1",
			AppID:   testAppID,
			Token:   "interaction-token",
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: testGuildID,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: testUserID, Username: "Collector"},
			},
		},
	}
}

// mockFetcher is a testify mock of pricing.Fetcher.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchPrices(ctx context.Context, currency string) (*pricing.Quote, error) {
	args := m.Called(ctx, currency)
	q, _ := args.Get(0).(*pricing.Quote)
	return q, args.Error(1)
}

// mockChecker is a testify mock of ownership.Checker.
type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) OwnsCollection(ctx context.Context, wallet, collection string) (bool, error) {
	args := m.Called(ctx, wallet, collection)
	return args.Bool(0), args.Error(1)
}
