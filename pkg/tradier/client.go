// Package tradier is a typed client for the Tradier brokerage API:
// account data, trading, market data, and streaming session bootstrap.
// Each method maps one REST endpoint to a plain data object; the
// stream subpackage consumes the WebSocket feeds.
package tradier

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tradekit/gotradier/pkg/ratelimit"
	"github.com/tradekit/gotradier/pkg/web"
)

const (
	ProductionBaseURL = "https://api.tradier.com"
	SandboxBaseURL    = "https://sandbox.tradier.com"
)

// Published request quotas per rolling minute. Production allows 120
// requests per minute on market data and accounts; the sandbox halves it.
const (
	productionRequestsPerMinute = 120
	sandboxRequestsPerMinute    = 60
)

var log = logrus.WithField("pkg", "tradier")

// Client talks to one Tradier account. Safe for concurrent use; it holds
// no mutable state beyond the underlying HTTP client.
type Client struct {
	web       *web.Client
	accountID string
	sandbox   bool
}

// NewClient builds a client for the production environment, or the
// sandbox when sandbox is true. Requests are throttled to the published
// per-minute quota for the environment. Some endpoints (user profile,
// account history) are not implemented by the sandbox and return
// *NotAvailableError there.
func NewClient(accountID, token string, sandbox bool) *Client {
	base := ProductionBaseURL
	limit := productionRequestsPerMinute
	if sandbox {
		base = SandboxBaseURL
		limit = sandboxRequestsPerMinute
	}

	w := web.NewClient(base, token)
	w.SetRateLimiter(ratelimit.NewSlidingWindow(limit, time.Minute))

	return &Client{
		web:       w,
		accountID: accountID,
		sandbox:   sandbox,
	}
}

// NewClientWithBaseURL points the client at an arbitrary host, with no
// request throttle. Used by tests and by gateways that terminate TLS
// locally.
func NewClientWithBaseURL(accountID, token, baseURL string) *Client {
	return &Client{
		web:       web.NewClient(baseURL, token),
		accountID: accountID,
	}
}

// AccountID returns the account the client was built for.
func (c *Client) AccountID() string {
	return c.accountID
}

// Sandbox reports whether the client targets the sandbox environment.
func (c *Client) Sandbox() bool {
	return c.sandbox
}

// NewOrderTag returns a unique tag suitable for the order tag parameter
// (alphanumeric and dashes only).
func NewOrderTag() string {
	return "gotradier-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
