package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"

	"github.com/specialistvlad/assetgate/internal/config"
	"github.com/specialistvlad/assetgate/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SocketIO emits one event per notification over a short-lived socket.io
// connection.
type SocketIO struct {
	cfg config.Notify
}

// NewSocketIO creates a socket.io notifier from cfg.
func NewSocketIO(cfg config.Notify) *SocketIO {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultNotifyTimeout
	}
	if cfg.Event == "" {
		cfg.Event = config.DefaultNotifyEvent
	}
	return &SocketIO{cfg: cfg}
}

// Notify connects, emits the configured event with ev's payload once
// connected, and disconnects. It gives up after the configured timeout.
func (n *SocketIO) Notify(ctx context.Context, ev Event) error {
	logger := ctxlog.FromContext(ctx).With("notifier", "socketio", "url", n.cfg.URL, "event", n.cfg.Event)

	parsedURL, err := url.Parse(n.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("notify URL %q must include scheme and host", n.cfg.URL)
	}

	opCtx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if n.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(n.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	done := make(chan error, 1)
	report := func(err error) {
		select {
		case done <- err:
		default:
		}
	}
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected, emitting event", "sid", io.Id())
		io.Emit(n.cfg.Event, ev.Payload())
		report(nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		report(err)
	})

	io.Connect()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
		logger.Debug("Notification sent.")
		return nil
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %s waiting for socket.io connection", n.cfg.Timeout)
	}
}
