package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tradekit/gotradier/pkg/tradier"
)

// OrderSessionSource bootstraps account event sessions and resolves full
// order detail. Implemented by *tradier.Client.
type OrderSessionSource interface {
	CreateAccountEventSession(ctx context.Context) (*tradier.StreamSession, error)
	GetOrder(ctx context.Context, orderID string) (*tradier.Order, error)
}

// OrderClient streams order events for the account. Heartbeat frames are
// consumed silently. When WithDetail is set each event triggers a REST
// re-fetch so callers get the complete order, not just the event delta.
type OrderClient struct {
	source     OrderSessionSource
	config     *Config
	withDetail bool

	conn   *websocket.Conn
	connMu sync.Mutex

	running   bool
	runningMu sync.Mutex

	orders chan tradier.Order
	errs   chan error
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewOrderClient builds an order stream client. withDetail selects the
// REST re-fetch behavior described on OrderClient.
func NewOrderClient(source OrderSessionSource, withDetail bool) *OrderClient {
	return NewOrderClientWithConfig(source, withDetail, DefaultConfig())
}

// NewOrderClientWithConfig builds an order stream client with a custom
// configuration.
func NewOrderClientWithConfig(source OrderSessionSource, withDetail bool, config *Config) *OrderClient {
	if config == nil {
		config = DefaultConfig()
	}
	return &OrderClient{
		source:     source,
		config:     config,
		withDetail: withDetail,
		orders:     make(chan tradier.Order, config.EventBufferSize),
		errs:       make(chan error, config.ErrorBufferSize),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Orders delivers order events. Closed when the read loop ends.
func (c *OrderClient) Orders() <-chan tradier.Order {
	return c.orders
}

// Errs delivers read/decode/re-fetch errors.
func (c *OrderClient) Errs() <-chan error {
	return c.errs
}

// Start creates an account event session, dials the URL it advertises,
// subscribes to order events, and launches the read loop.
func (c *OrderClient) Start(ctx context.Context) error {
	c.runningMu.Lock()
	if c.running {
		c.runningMu.Unlock()
		return fmt.Errorf("order stream already running")
	}
	c.running = true
	c.runningMu.Unlock()

	session, err := c.source.CreateAccountEventSession(ctx)
	if err != nil {
		c.setStopped()
		return err
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.HandshakeTimeout,
		ReadBufferSize:   c.config.ReadBufferSize,
		WriteBufferSize:  c.config.WriteBufferSize,
	}
	conn, _, err := dialer.DialContext(ctx, session.URL, nil)
	if err != nil {
		c.setStopped()
		return fmt.Errorf("dial order stream: %w", err)
	}

	payload := map[string]any{
		"events":          []string{"order"},
		"sessionid":       session.SessionID,
		"excludeAccounts": []string{},
	}
	if err := conn.WriteJSON(payload); err != nil {
		conn.Close()
		c.setStopped()
		return fmt.Errorf("subscribe order stream: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	log.Debug("order stream started")
	go c.readLoop(ctx)
	return nil
}

// Stop closes the connection and waits for the read loop to finish.
func (c *OrderClient) Stop() {
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

func (c *OrderClient) setStopped() {
	c.runningMu.Lock()
	c.running = false
	c.runningMu.Unlock()
}

type orderFrame struct {
	Event   string `json:"event"`
	Account string `json:"account"`
	tradier.Order
}

func (c *OrderClient) readLoop(ctx context.Context) {
	defer close(c.doneCh)
	defer close(c.orders)

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
				c.pushErr(fmt.Errorf("order stream read: %w", err))
			}
			return
		}

		var frame orderFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			c.pushErr(fmt.Errorf("decode order event %q: %w", msg, err))
			continue
		}

		switch frame.Event {
		case "heartbeat":
			continue
		case "order":
		default:
			log.WithField("event", frame.Event).Debug("ignoring unknown stream event")
			continue
		}

		order := frame.Order
		if c.withDetail {
			full, err := c.source.GetOrder(ctx, strconv.Itoa(order.ID.Int()))
			if err != nil {
				c.pushErr(fmt.Errorf("fetch order %d detail: %w", order.ID.Int(), err))
				continue
			}
			order = *full
		}

		select {
		case c.orders <- order:
		case <-c.stopCh:
			return
		}
	}
}

func (c *OrderClient) pushErr(err error) {
	select {
	case c.errs <- err:
	default:
		log.WithError(err).Warn("error channel full, dropping")
	}
}
