// Package web is the shared HTTP transport for the Tradier API client.
// Every resource method funnels through one of the verb helpers here:
// bearer auth and the JSON accept header are injected once, non-200
// responses and embedded error payloads map to *APIError.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/tradekit/gotradier/pkg/ratelimit"
)

type Client struct {
	client  *resty.Client
	limiter ratelimit.Limiter
}

// NewClient builds a transport rooted at host. The token is sent as a
// bearer Authorization header on every request. Calls are single-attempt:
// the broker's own guidance is to surface failures to the caller rather
// than retry blindly.
func NewClient(host, token string) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(host, "/")).
		SetTimeout(30 * time.Second).
		SetRetryCount(0).
		SetAuthToken(token).
		SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// SetRateLimiter installs a client-side throttle. Every request waits on
// it before going out. Nil disables throttling.
func (c *Client) SetRateLimiter(limiter ratelimit.Limiter) {
	c.limiter = limiter
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// Get issues a GET with the given query parameters and decodes the JSON
// response into out.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, out any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	req := c.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	return c.finish(resp, err, out)
}

// PostForm issues a POST with a form-encoded body. Tradier's write
// endpoints (order placement, session creation) all take form bodies.
func (c *Client) PostForm(ctx context.Context, path string, form map[string]string, out any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	req := c.client.R().SetContext(ctx)
	if len(form) > 0 {
		req.SetFormData(form)
	}
	resp, err := req.Post(path)
	return c.finish(resp, err, out)
}

// PutForm issues a PUT with a form-encoded body.
func (c *Client) PutForm(ctx context.Context, path string, form map[string]string, out any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	req := c.client.R().SetContext(ctx)
	if len(form) > 0 {
		req.SetFormData(form)
	}
	resp, err := req.Put(path)
	return c.finish(resp, err, out)
}

// Delete issues a DELETE and decodes the JSON response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	resp, err := c.client.R().SetContext(ctx).Delete(path)
	return c.finish(resp, err, out)
}

func (c *Client) finish(resp *resty.Response, err error, out any) error {
	if err != nil {
		return errors.Wrap(err, "request failed")
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode(), Message: string(body)}
	}

	if apiErr := embeddedError(resp.StatusCode(), body); apiErr != nil {
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.Wrapf(err, "decode response %q", truncate(body, 256))
		}
	}
	return nil
}

// embeddedError detects the broker's in-band error envelope. Some
// endpoints answer 200 with {"errors": {"error": "..."}} or with a list
// of messages instead of a failing status code.
func embeddedError(status int, body []byte) *APIError {
	var envelope struct {
		Errors *struct {
			Error json.RawMessage `json:"error"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Errors == nil {
		return nil
	}

	raw := envelope.Errors.Error
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		var msgs []string
		if err := json.Unmarshal(raw, &msgs); err != nil {
			msg = string(raw)
		} else {
			msg = strings.Join(msgs, "; ")
		}
	}
	return &APIError{StatusCode: http.StatusBadRequest, Message: msg, embedded: status == http.StatusOK}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
