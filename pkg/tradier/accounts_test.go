package tradier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithBaseURL("account-id", "token", server.URL)
}

func TestGetUserProfileStampsAccounts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointUserProfile {
			t.Errorf("path got=%s want=%s", r.URL.Path, EndpointUserProfile)
		}
		w.Write([]byte(`{
			"profile": {
				"id": "id-gcostanza",
				"name": "George Costanza",
				"account": [
					{"account_number": "VA000001", "classification": "individual", "day_trader": false, "option_level": 6, "status": "active", "type": "margin"},
					{"account_number": "VA000002", "classification": "individual", "day_trader": true, "option_level": 3, "status": "active", "type": "cash"}
				]
			}
		}`))
	}))

	accounts, err := client.GetUserProfile(context.Background())
	if err != nil {
		t.Fatalf("GetUserProfile error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("accounts got=%d want=2", len(accounts))
	}
	for _, account := range accounts {
		if account.ID != "id-gcostanza" || account.Name != "George Costanza" {
			t.Errorf("account %s not stamped with profile id/name: %+v", account.AccountNumber, account)
		}
	}
	if accounts[0].Type != AccountTypeMargin || accounts[1].Type != AccountTypeCash {
		t.Errorf("account types got=%s,%s", accounts[0].Type, accounts[1].Type)
	}
	if accounts[0].OptionLevel.Int() != 6 {
		t.Errorf("option level got=%d want=6", accounts[0].OptionLevel.Int())
	}
}

func TestGetUserProfileSingleAccount(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"profile": {
				"id": "id-gcostanza",
				"name": "George Costanza",
				"account": {"account_number": "VA000001", "status": "active", "type": "pdt"}
			}
		}`))
	}))

	accounts, err := client.GetUserProfile(context.Background())
	if err != nil {
		t.Fatalf("GetUserProfile error: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("accounts got=%d want=1", len(accounts))
	}
	if accounts[0].Type != AccountTypePDT {
		t.Errorf("type got=%s want=pdt", accounts[0].Type)
	}
}

func TestGetUserProfileNotAvailableInSandbox(t *testing.T) {
	client := NewClient("account-id", "token", true)
	_, err := client.GetUserProfile(context.Background())
	var naErr *NotAvailableError
	if !errors.As(err, &naErr) {
		t.Fatalf("expected *NotAvailableError, got %v", err)
	}
}

func TestGetBalanceMargin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts/account-id/balances" {
			t.Errorf("path got=%s", r.URL.Path)
		}
		w.Write([]byte(`{
			"balances": {
				"account_number": "VA000001",
				"account_type": "margin",
				"total_equity": 17798.36,
				"total_cash": 4343.38,
				"open_pl": -260.62,
				"close_pl": "0",
				"pending_orders_count": 2,
				"margin": {"fed_call": 0, "option_buying_power": 6363.86, "stock_buying_power": 12727.72}
			}
		}`))
	}))

	balance, err := client.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("GetBalance error: %v", err)
	}
	if balance.TotalEquity.Float64() != 17798.36 {
		t.Errorf("total equity got=%v want=17798.36", balance.TotalEquity.Float64())
	}
	if balance.ClosePL.Float64() != 0 {
		t.Errorf("close pl got=%v want=0", balance.ClosePL.Float64())
	}
	if balance.Margin == nil || balance.Margin.StockBuyingPower.Float64() != 12727.72 {
		t.Fatalf("margin block got=%+v", balance.Margin)
	}
	if balance.Cash != nil || balance.PDT != nil {
		t.Error("only the margin block should be populated")
	}
}

func TestGetPositions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "multiple",
			body: `{"positions": {"position": [
				{"symbol": "AAPL", "quantity": 100, "cost_basis": 17025.0, "id": 130089, "date_acquired": "2023-06-07T14:25:44.744Z"},
				{"symbol": "MSFT", "quantity": 50, "cost_basis": 16650.0, "id": 130090, "date_acquired": "2023-06-08T14:25:44.744Z"}
			]}}`,
			want: 2,
		},
		{
			name: "single object",
			body: `{"positions": {"position": {"symbol": "AAPL", "quantity": 100, "cost_basis": 17025.0, "id": 130089}}}`,
			want: 1,
		},
		{
			name: "null string",
			body: `{"positions": "null"}`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			positions, err := client.GetPositions(context.Background())
			if err != nil {
				t.Fatalf("GetPositions error: %v", err)
			}
			if len(positions) != tt.want {
				t.Fatalf("positions got=%d want=%d", len(positions), tt.want)
			}
			if tt.want > 0 && positions[0].Symbol != "AAPL" {
				t.Errorf("symbol got=%s want=AAPL", positions[0].Symbol)
			}
		})
	}
}

func TestGetHistoryFlattensEventDetail(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"page":  r.URL.Query().Get("page"),
			"limit": r.URL.Query().Get("limit"),
			"type":  r.URL.Query().Get("type"),
		}
		w.Write([]byte(`{
			"history": {
				"event": [
					{"amount": -3000.0, "date": "2023-07-11T00:00:00Z", "type": "ach", "ach": {"description": "ACH DISBURSEMENT", "quantity": 0.0}},
					{"amount": 261.69, "date": "2023-07-10T00:00:00Z", "type": "trade", "trade": {"commission": 0.0, "description": "CALL  SPY  07/10/23   437.00", "price": 0.87, "quantity": -3.0, "symbol": "SPY230710C00437000", "trade_type": "Option"}}
				]
			}
		}`))
	}))

	events, err := client.GetHistory(context.Background(), HistoryParams{Type: EventTypeACH})
	if err != nil {
		t.Fatalf("GetHistory error: %v", err)
	}
	if gotQuery["page"] != "1" || gotQuery["limit"] != "25" {
		t.Errorf("default paging got=%v want page=1 limit=25", gotQuery)
	}
	if gotQuery["type"] != "ach" {
		t.Errorf("type query got=%q want=ach", gotQuery["type"])
	}
	if len(events) != 2 {
		t.Fatalf("events got=%d want=2", len(events))
	}
	if events[0].Description != "ACH DISBURSEMENT" {
		t.Errorf("ach description got=%q", events[0].Description)
	}
	if events[1].Symbol != "SPY230710C00437000" {
		t.Errorf("trade symbol got=%q", events[1].Symbol)
	}
	if events[1].TradeType != TradeTypeOption {
		t.Errorf("trade type got=%q want=option", events[1].TradeType)
	}
}

func TestGetHistoryValidation(t *testing.T) {
	sandbox := NewClient("account-id", "token", true)
	if _, err := sandbox.GetHistory(context.Background(), HistoryParams{}); err == nil {
		t.Fatal("expected sandbox error")
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent for invalid dates")
	}))
	_, err := client.GetHistory(context.Background(), HistoryParams{Start: "07-01-2023"})
	var dateErr *InvalidDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected *InvalidDateError, got %v", err)
	}
}

func TestGetGainLossParams(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"page":   q.Get("page"),
			"limit":  q.Get("limit"),
			"sortBy": q.Get("sortBy"),
			"sort":   q.Get("sort"),
			"symbol": q.Get("symbol"),
		}
		w.Write([]byte(`{
			"gainloss": {
				"closed_position": {
					"close_date": "2023-07-10T00:00:00Z",
					"cost": 1870.7,
					"gain_loss": -862.91,
					"gain_loss_percent": "-46.1276",
					"open_date": "2023-07-03T00:00:00Z",
					"proceeds": 1007.79,
					"quantity": 2.0,
					"symbol": "SPY230710C00429000",
					"term": "3"
				}
			}
		}`))
	}))

	results, err := client.GetGainLoss(context.Background(), GainLossParams{
		Symbol:         "SPY230710C00429000",
		SortByOpenDate: true,
		Ascending:      true,
	})
	if err != nil {
		t.Fatalf("GetGainLoss error: %v", err)
	}
	if gotQuery["sortBy"] != "openDate" || gotQuery["sort"] != "asc" {
		t.Errorf("sort query got=%v", gotQuery)
	}
	if gotQuery["page"] != "1" || gotQuery["limit"] != "25" {
		t.Errorf("paging got=%v", gotQuery)
	}
	if len(results) != 1 {
		t.Fatalf("results got=%d want=1", len(results))
	}
	if results[0].GainLossPercent.Float64() != -46.1276 {
		t.Errorf("gain_loss_percent got=%v want=-46.1276", results[0].GainLossPercent.Float64())
	}
	if results[0].Term.Int() != 3 {
		t.Errorf("term got=%d want=3", results[0].Term.Int())
	}
}

func TestGetGainLossDefaultsSortByCloseDateDesc(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("sortBy") != "closeDate" || q.Get("sort") != "desc" {
			t.Errorf("default sort got sortBy=%s sort=%s", q.Get("sortBy"), q.Get("sort"))
		}
		w.Write([]byte(`{"gainloss": "null"}`))
	}))

	results, err := client.GetGainLoss(context.Background(), GainLossParams{})
	if err != nil {
		t.Fatalf("GetGainLoss error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results got=%d want=0", len(results))
	}
}

func TestGetOrdersWalksPages(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("includeTags") != "true" {
			t.Error("includeTags should be true")
		}
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`{"orders": {"order": [
				{"id": 1, "symbol": "AAPL", "status": "filled", "class": "equity"},
				{"id": 2, "symbol": "MSFT", "status": "open", "class": "equity"}
			]}}`))
		case "2":
			w.Write([]byte(`{"orders": {"order": {"id": 3, "symbol": "SPY", "status": "canceled", "class": "option"}}}`))
		default:
			w.Write([]byte(`{"orders": "null"}`))
		}
	}))

	orders, err := client.GetOrders(context.Background())
	if err != nil {
		t.Fatalf("GetOrders error: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("orders got=%d want=3", len(orders))
	}
	if orders[2].ID.Int() != 3 || orders[2].Class != OrderClassOption {
		t.Errorf("last order got=%+v", orders[2])
	}
}

func TestGetOrderWithLegs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts/account-id/orders/8043" {
			t.Errorf("path got=%s", r.URL.Path)
		}
		w.Write([]byte(`{
			"order": {
				"id": 8043,
				"type": "debit",
				"symbol": "SPY",
				"side": "buy",
				"quantity": 1.0,
				"status": "canceled",
				"duration": "day",
				"price": 0.8,
				"class": "multileg",
				"num_legs": 2,
				"tag": "gotradier-abc",
				"leg": [
					{"id": 8044, "side": "buy_to_open", "option_symbol": "SPY230721C00444000"},
					{"id": 8045, "side": "sell_to_open", "option_symbol": "SPY230721C00445000"}
				]
			}
		}`))
	}))

	order, err := client.GetOrder(context.Background(), "8043")
	if err != nil {
		t.Fatalf("GetOrder error: %v", err)
	}
	if order.ID.Int() != 8043 || order.NumLegs != 2 {
		t.Fatalf("order got=%+v", order)
	}
	if len(order.Legs) != 2 {
		t.Fatalf("legs got=%d want=2", len(order.Legs))
	}
	if order.Legs[1].Side != SideSellToOpen {
		t.Errorf("second leg side got=%s want=sell_to_open", order.Legs[1].Side)
	}
	if order.Tag != "gotradier-abc" {
		t.Errorf("tag got=%q", order.Tag)
	}
}
