package tradier

import (
	"context"
	"net/http"
	"testing"
)

func TestCreateSessions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method got=%s want=POST", r.Method)
		}
		switch r.URL.Path {
		case EndpointAccountEventsSession:
			w.Write([]byte(`{"stream": {"url": "https://ws.tradier.com/v1/accounts/events", "sessionid": "account-session-id"}}`))
		case EndpointMarketEventsSession:
			w.Write([]byte(`{"stream": {"url": "https://ws.tradier.com/v1/markets/events", "sessionid": "market-session-id"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	account, err := client.CreateAccountEventSession(context.Background())
	if err != nil {
		t.Fatalf("CreateAccountEventSession error: %v", err)
	}
	if account.SessionID != "account-session-id" {
		t.Errorf("session id got=%q", account.SessionID)
	}
	if account.URL == "" {
		t.Error("account session should carry a URL")
	}

	market, err := client.CreateMarketEventSession(context.Background())
	if err != nil {
		t.Fatalf("CreateMarketEventSession error: %v", err)
	}
	if market.SessionID != "market-session-id" {
		t.Errorf("session id got=%q", market.SessionID)
	}
}
