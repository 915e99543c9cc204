package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tradekit/gotradier/pkg/tradier"
)

type fakeMarketSource struct {
	sessionID string
	err       error
}

func (f *fakeMarketSource) CreateMarketEventSession(ctx context.Context) (*tradier.StreamSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tradier.StreamSession{URL: tradier.MarketEventsURL, SessionID: f.sessionID}, nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newWSServer runs handler on every upgraded connection and returns the
// ws:// URL to dial.
func newWSServer(t *testing.T, handler func(*websocket.Conn)) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func recvEvent(t *testing.T, events <-chan MarketEvent) MarketEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		if !ok {
			t.Fatal("event channel closed")
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return MarketEvent{}
}

func TestMarketClientSubscribesAndDecodes(t *testing.T) {
	subscribed := make(chan map[string]any, 1)
	url := newWSServer(t, func(conn *websocket.Conn) {
		var payload map[string]any
		if err := conn.ReadJSON(&payload); err != nil {
			t.Errorf("read subscribe payload: %v", err)
			return
		}
		subscribed <- payload

		frames := []string{
			`{"type": "trade", "symbol": "SPY", "exch": "J", "price": "443.79", "size": "100", "cvol": "39255300", "date": "1688995800000", "last": "443.79"}`,
			`{"type": "quote", "symbol": "SPY", "bid": 443.78, "bidsz": 12, "bidexch": "K", "ask": 443.80, "asksz": 9, "askexch": "Q"}`,
			`{"type": "summary", "symbol": "SPY", "open": "442.92", "high": "444.08", "low": "442.64", "prevClose": "443.13"}`,
			`{"type": "timesale", "symbol": "SPY", "last": "443.79", "size": "100", "seq": 4123, "flag": "", "cancel": false, "correction": false, "session": "normal"}`,
			`{"type": "halt", "symbol": "SPY"}`,
		}
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Hold the connection until the client closes it.
		conn.ReadMessage()
	})

	config := DefaultConfig()
	config.MarketURL = url
	config.Filters = []tradier.MarketEventType{tradier.MarketEventQuote}

	client := NewMarketClientWithConfig(&fakeMarketSource{sessionID: "sess-1"}, config)
	if err := client.Start(context.Background(), []string{"SPY", "AAPL"}); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer client.Stop()

	select {
	case payload := <-subscribed:
		if payload["sessionid"] != "sess-1" {
			t.Errorf("sessionid got=%v want=sess-1", payload["sessionid"])
		}
		symbols, _ := payload["symbols"].([]any)
		if len(symbols) != 2 {
			t.Errorf("symbols got=%v", payload["symbols"])
		}
		filters, _ := payload["filter"].([]any)
		if len(filters) != 2 || filters[0] != "quote" || filters[1] != "trade" {
			t.Errorf("filter got=%v want [quote trade]", payload["filter"])
		}
		if payload["linebreak"] != true || payload["validOnly"] != true {
			t.Errorf("flags got linebreak=%v validOnly=%v", payload["linebreak"], payload["validOnly"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscribe payload")
	}

	trade := recvEvent(t, client.Events())
	if trade.Type != tradier.MarketEventTrade || trade.Trade == nil {
		t.Fatalf("trade event got=%+v", trade)
	}
	if trade.Trade.Price.Float64() != 443.79 || trade.Trade.Size.Int() != 100 {
		t.Errorf("trade payload got=%+v", trade.Trade)
	}

	quote := recvEvent(t, client.Events())
	if quote.Type != tradier.MarketEventQuote || quote.Quote == nil {
		t.Fatalf("quote event got=%+v", quote)
	}
	if quote.Quote.Bid.Float64() != 443.78 || quote.Quote.AskSz.Int() != 9 {
		t.Errorf("quote payload got=%+v", quote.Quote)
	}

	summary := recvEvent(t, client.Events())
	if summary.Type != tradier.MarketEventSummary || summary.Summary == nil {
		t.Fatalf("summary event got=%+v", summary)
	}
	if summary.Summary.PrevClose.Float64() != 443.13 {
		t.Errorf("prevClose got=%v", summary.Summary.PrevClose.Float64())
	}

	timesale := recvEvent(t, client.Events())
	if timesale.Type != tradier.MarketEventTimesale || timesale.Timesale == nil {
		t.Fatalf("timesale event got=%+v", timesale)
	}
	if timesale.Timesale.Seq.Int() != 4123 {
		t.Errorf("seq got=%d", timesale.Timesale.Seq.Int())
	}

	unknown := recvEvent(t, client.Events())
	if unknown.Type != tradier.MarketEventType("halt") {
		t.Fatalf("unknown event got=%+v", unknown)
	}
	if unknown.Trade != nil || unknown.Quote != nil || unknown.Summary != nil || unknown.Timesale != nil {
		t.Error("unknown event should carry no payload")
	}
}

func TestMarketClientStartTwice(t *testing.T) {
	url := newWSServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage() // subscribe
		conn.ReadMessage() // block until close
	})

	config := DefaultConfig()
	config.MarketURL = url

	client := NewMarketClientWithConfig(&fakeMarketSource{sessionID: "sess"}, config)
	if err := client.Start(context.Background(), []string{"SPY"}); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer client.Stop()

	if err := client.Start(context.Background(), []string{"SPY"}); err == nil {
		t.Fatal("second Start should fail while running")
	}
}

func TestMarketClientStopClosesEvents(t *testing.T) {
	url := newWSServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
		conn.ReadMessage()
	})

	config := DefaultConfig()
	config.MarketURL = url

	client := NewMarketClientWithConfig(&fakeMarketSource{sessionID: "sess"}, config)
	if err := client.Start(context.Background(), []string{"SPY"}); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	client.Stop()

	select {
	case _, ok := <-client.Events():
		if ok {
			t.Fatal("expected closed event channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event channel not closed after Stop")
	}
}

func TestMarketClientSessionFailure(t *testing.T) {
	client := NewMarketClient(&fakeMarketSource{err: context.DeadlineExceeded})
	if err := client.Start(context.Background(), []string{"SPY"}); err == nil {
		t.Fatal("expected session error")
	}
	// A failed Start must leave the client restartable.
	if client.running {
		t.Fatal("client should not be marked running after failed Start")
	}
}

func TestMarketEventDecodesTradex(t *testing.T) {
	var event MarketEvent
	data := `{"type": "tradex", "symbol": "SPY", "price": "443.80", "size": "250"}`
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if event.Type != tradier.MarketEventTradex || event.Trade == nil {
		t.Fatalf("tradex event got=%+v", event)
	}
	if event.Trade.Size.Int() != 250 {
		t.Errorf("size got=%d want=250", event.Trade.Size.Int())
	}
}
