package tradier

import "context"

// StreamSession is the WebSocket bootstrap handed out by the session
// endpoints. Sessions are short-lived; create one right before dialing.
type StreamSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionid"`
}

// CreateAccountEventSession creates a session for the account event
// (order) stream. The response carries the WebSocket URL to dial.
func (c *Client) CreateAccountEventSession(ctx context.Context) (*StreamSession, error) {
	return c.createSession(ctx, EndpointAccountEventsSession)
}

// CreateMarketEventSession creates a session for the market data stream.
// The market stream is always dialed at MarketEventsURL regardless of
// the URL in the response.
func (c *Client) CreateMarketEventSession(ctx context.Context) (*StreamSession, error) {
	return c.createSession(ctx, EndpointMarketEventsSession)
}

func (c *Client) createSession(ctx context.Context, path string) (*StreamSession, error) {
	var resp struct {
		Stream StreamSession `json:"stream"`
	}
	if err := c.web.PostForm(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stream, nil
}
