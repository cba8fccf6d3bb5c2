package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnexpectedStatus is wrapped by doJSON when the backend answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// doJSON sends an HTTP request with an optional JSON body and decodes a 2xx JSON response into out.
//
// Parameters: ctx: request context (deadline/cancel abort the call); client: shared http.Client;
// method/url: request line; headers: extra headers; body: marshalled as JSON when non-nil;
// out: decode target, may be nil to discard the body.
//
// Returns: nil on 2xx and successful decode; error wrapping ErrUnexpectedStatus on non-2xx (body drained);
// transport, marshal or decode error otherwise.
//
// Called by every adapter for listing, schema, settings and query requests.
func doJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, url, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
