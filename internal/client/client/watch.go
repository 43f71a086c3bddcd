package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/gorilla/websocket"
)

// WatchTasks streams task events to fn until ctx is cancelled or the
// connection drops. The handshake follows the same refresh-once rule as Do.
// Cancellation returns nil.
func (c *HTTPClient) WatchTasks(ctx context.Context, fn func(api.TaskEvent)) error {
	rec, err := c.store.Get(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		c.logout()
		return ErrNotAuthenticated
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	conn, resp, err := c.dialFeed(ctx, rec.AccessToken)
	if err != nil && resp != nil && resp.StatusCode == http.StatusUnauthorized {
		if err := c.renew(ctx, rec); err != nil {
			return err
		}
		conn, resp, err = c.dialFeed(ctx, rec.AccessToken)
	}
	if err != nil {
		if resp != nil {
			return statusError(resp)
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var e api.TaskEvent
		if err := conn.ReadJSON(&e); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("task feed: %w", err)
		}
		fn(e)
	}
}

func (c *HTTPClient) dialFeed(ctx context.Context, token string) (*websocket.Conn, *http.Response, error) {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/api/tasks/events"
	header := http.Header{}
	header.Set(common.AuthorizationHeader, common.BearerScheme+token)

	dialer := *websocket.DefaultDialer
	if c.http.Timeout > 0 {
		dialer.HandshakeTimeout = c.http.Timeout
	}
	return dialer.DialContext(ctx, wsURL, header)
}
