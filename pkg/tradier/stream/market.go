package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/tradekit/gotradier/pkg/tradier"
)

var log = logrus.WithField("pkg", "stream")

// MarketSessionSource bootstraps market stream sessions. Implemented by
// *tradier.Client.
type MarketSessionSource interface {
	CreateMarketEventSession(ctx context.Context) (*tradier.StreamSession, error)
}

// MarketClient streams market data events for a set of symbols. Create
// one per subscription set; the symbol list is fixed at Start.
type MarketClient struct {
	source MarketSessionSource
	config *Config

	conn   *websocket.Conn
	connMu sync.Mutex

	running   bool
	runningMu sync.Mutex

	events chan MarketEvent
	errs   chan error
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewMarketClient builds a market stream client with DefaultConfig.
func NewMarketClient(source MarketSessionSource) *MarketClient {
	return NewMarketClientWithConfig(source, DefaultConfig())
}

// NewMarketClientWithConfig builds a market stream client with a custom
// configuration.
func NewMarketClientWithConfig(source MarketSessionSource, config *Config) *MarketClient {
	if config == nil {
		config = DefaultConfig()
	}
	return &MarketClient{
		source: source,
		config: config,
		events: make(chan MarketEvent, config.EventBufferSize),
		errs:   make(chan error, config.ErrorBufferSize),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Events delivers decoded market events. Closed when the read loop ends.
func (c *MarketClient) Events() <-chan MarketEvent {
	return c.events
}

// Errs delivers read/decode errors.
func (c *MarketClient) Errs() <-chan error {
	return c.errs
}

// Start creates a session, dials the market endpoint, sends the
// subscription payload, and launches the read loop.
func (c *MarketClient) Start(ctx context.Context, symbols []string) error {
	c.runningMu.Lock()
	if c.running {
		c.runningMu.Unlock()
		return fmt.Errorf("market stream already running")
	}
	c.running = true
	c.runningMu.Unlock()

	session, err := c.source.CreateMarketEventSession(ctx)
	if err != nil {
		c.setStopped()
		return err
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.HandshakeTimeout,
		ReadBufferSize:   c.config.ReadBufferSize,
		WriteBufferSize:  c.config.WriteBufferSize,
	}
	conn, _, err := dialer.DialContext(ctx, c.config.MarketURL, nil)
	if err != nil {
		c.setStopped()
		return fmt.Errorf("dial market stream: %w", err)
	}

	// The trade filter is always on, matching the server default when no
	// filter is sent at all.
	filters := append([]tradier.MarketEventType{}, c.config.Filters...)
	filters = append(filters, tradier.MarketEventTrade)

	payload := map[string]any{
		"symbols":         symbols,
		"sessionid":       session.SessionID,
		"linebreak":       c.config.Linebreak,
		"filter":          filters,
		"validOnly":       c.config.ValidOnly,
		"advancedDetails": c.config.AdvancedDetails,
	}
	if err := conn.WriteJSON(payload); err != nil {
		conn.Close()
		c.setStopped()
		return fmt.Errorf("subscribe market stream: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	log.WithField("symbols", len(symbols)).Debug("market stream started")
	go c.readLoop()
	return nil
}

// Stop closes the connection and waits for the read loop to finish.
func (c *MarketClient) Stop() {
	c.runningMu.Lock()
	if !c.running {
		c.runningMu.Unlock()
		return
	}
	c.running = false
	c.runningMu.Unlock()

	close(c.stopCh)

	c.connMu.Lock()
	if c.conn != nil {
		c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.conn.Close()
		c.conn = nil
	}
	c.connMu.Unlock()

	<-c.doneCh
}

func (c *MarketClient) setStopped() {
	c.runningMu.Lock()
	c.running = false
	c.runningMu.Unlock()
}

func (c *MarketClient) readLoop() {
	defer close(c.doneCh)
	defer close(c.events)

	for {
		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()
		if conn == nil {
			return
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.stopCh:
			default:
				c.pushErr(fmt.Errorf("market stream read: %w", err))
			}
			return
		}

		var event MarketEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			c.pushErr(fmt.Errorf("decode market event %q: %w", msg, err))
			continue
		}

		select {
		case c.events <- event:
		case <-c.stopCh:
			return
		}
	}
}

func (c *MarketClient) pushErr(err error) {
	select {
	case c.errs <- err:
	default:
		log.WithError(err).Warn("error channel full, dropping")
	}
}
