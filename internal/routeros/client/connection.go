// Package client implements the RouterOS API connection lifecycle (dial,
// authenticate, read loop, idle reaper) and the typed static-DNS
// operations built on top of it.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/jroosing/routeros-dns-webhook/internal/routeros/proto"
)

// pollInterval is the cadence of both the idle monitor's wakeups and the
// reader's first-byte read deadline, so a closed connection is observed
// promptly without busy-spinning.
const pollInterval = time.Second

// Config holds the dial and authentication parameters for a Connection.
type Config struct {
	Host        string
	Username    string
	Password    string
	Port        int           // default 8728
	IdleTimeout time.Duration // default 10s
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = 8728
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 10 * time.Second
	}
	return c
}

// Connection owns at most one TCP socket to a router, opened lazily on
// first use and torn down after IdleTimeout of inactivity or a protocol
// failure. A zero-value Connection is not usable; use New.
type Connection struct {
	cfg Config
	log *slog.Logger

	mu     sync.Mutex // guards conn/closed transitions; held for all of open+login
	conn   net.Conn
	closed chan struct{}
	wg     sync.WaitGroup

	writeMu sync.Mutex // serializes sentence writes on the wire

	pendingMu sync.Mutex
	pending   map[string]*proto.Response

	activityMu   sync.Mutex
	lastActivity time.Time
}

// New returns a Connection for cfg. It does not dial; the first call to
// Open or Send does.
func New(cfg Config, log *slog.Logger) *Connection {
	if log == nil {
		log = slog.Default()
	}
	return &Connection{
		cfg:     cfg.withDefaults(),
		log:     log,
		pending: make(map[string]*proto.Response),
	}
}

// Open dials and authenticates the connection if it is not already open.
// It is idempotent and safe for concurrent callers: the mutex is held for
// the full duration of dial+login, so only one goroutine performs them and
// the rest observe the already-open result.
func (c *Connection) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.touch()

	if c.conn != nil {
		return nil
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port))
	if err != nil {
		return fmt.Errorf("routeros: dial: %w", err)
	}

	c.conn = conn
	c.closed = make(chan struct{})
	c.wg.Add(2)
	go c.readLoop(conn, c.closed)
	go c.idleMonitor(c.closed)

	login := proto.NewRequest("/login", map[string]string{
		"name":     c.cfg.Username,
		"password": c.cfg.Password,
	})
	resp := c.registerPending(login.Tag)
	if err := c.writeSentence(conn, login.Words()); err != nil {
		c.pendingRemove(login.Tag)
		c.closeLocked()
		return fmt.Errorf("routeros: login: %w", err)
	}
	if err := resp.Wait(ctx); err != nil {
		c.pendingRemove(login.Tag)
		c.closeLocked()
		return fmt.Errorf("routeros: login: %w", err)
	}
	if err := resp.Err(); err != nil {
		c.closeLocked()
		return fmt.Errorf("routeros: login rejected: %w", err)
	}
	return nil
}

// Close tears the connection down if open. It is idempotent and blocks
// until the reader and idle-monitor goroutines have exited.
func (c *Connection) Close() {
	c.mu.Lock()
	wasOpen := c.conn != nil
	c.closeLocked()
	c.mu.Unlock()
	if wasOpen {
		c.wg.Wait()
	}
}

// closeLocked tears down the current socket and cancels every pending
// response with a synthetic "response cancelled" trap. Callers must hold
// c.mu. It is a no-op if already closed.
func (c *Connection) closeLocked() {
	if c.conn == nil {
		return
	}
	close(c.closed)
	_ = c.conn.Close()
	c.conn = nil

	c.pendingMu.Lock()
	pending := c.pending
	c.pending = make(map[string]*proto.Response)
	c.pendingMu.Unlock()

	for _, resp := range pending {
		resp.UpdateWithSentence(proto.Sentence{
			Type:       "!trap",
			Attributes: map[string]string{"message": "response cancelled"},
		})
		resp.UpdateWithSentence(proto.Sentence{Type: "!done"})
	}
}

// Send ensures the connection is open, submits a tagged request, and
// returns its Response once the device has terminated it with "!done".
// Send does not interpret trap content itself; callers inspect
// Response.Err to decide how to react to a device-side error.
func (c *Connection) Send(ctx context.Context, command string, attrs map[string]string) (*proto.Response, error) {
	if err := c.Open(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil, fmt.Errorf("routeros: connection closed before send")
	}

	req := proto.NewRequest(command, attrs)
	resp := c.registerPending(req.Tag)

	if err := c.writeSentence(conn, req.Words()); err != nil {
		c.pendingRemove(req.Tag)
		return nil, fmt.Errorf("routeros: write: %w", err)
	}

	if err := resp.Wait(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Connection) writeSentence(conn net.Conn, words []string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return proto.WriteSentenceWords(conn, words)
}

func (c *Connection) registerPending(tag string) *proto.Response {
	resp := proto.NewResponse()
	c.pendingMu.Lock()
	c.pending[tag] = resp
	c.pendingMu.Unlock()
	return resp
}

func (c *Connection) pendingRemove(tag string) {
	c.pendingMu.Lock()
	delete(c.pending, tag)
	c.pendingMu.Unlock()
}

func (c *Connection) touch() {
	c.activityMu.Lock()
	c.lastActivity = time.Now()
	c.activityMu.Unlock()
}

func (c *Connection) idleSince() time.Duration {
	c.activityMu.Lock()
	defer c.activityMu.Unlock()
	return time.Since(c.lastActivity)
}

// readLoop delivers sentences to their pending responses by tag until the
// socket is closed or a protocol error occurs, at which point it fails the
// connection (tearing it down and cancelling every still-pending
// response). It polls for the first byte of each sentence under a short
// read deadline so a concurrent Close is observed promptly; a timeout
// partway through an already-started word is treated as a protocol error,
// not a poll.
func (c *Connection) readLoop(conn net.Conn, closed chan struct{}) {
	defer c.wg.Done()
	for {
		select {
		case <-closed:
			return
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(pollInterval))
		header, err := proto.ReadWordHeaderByte(conn)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			c.fail(fmt.Errorf("routeros: read: %w", err))
			return
		}
		_ = conn.SetReadDeadline(time.Time{})

		first, err := proto.ReadWordRemainder(header, conn)
		if err != nil {
			c.fail(fmt.Errorf("%w: %v", proto.ErrProtocol, err))
			return
		}
		rest, err := proto.ReadSentenceWords(conn)
		if err != nil {
			c.fail(fmt.Errorf("%w: %v", proto.ErrProtocol, err))
			return
		}
		c.touch()

		sentence, err := proto.ParseSentence(append([]string{first}, rest...))
		if err != nil {
			c.fail(err)
			return
		}

		tag, ok := sentence.Tag()
		if !ok {
			c.fail(fmt.Errorf("%w: sentence without tag", proto.ErrProtocol))
			return
		}

		c.pendingMu.Lock()
		resp, ok := c.pending[tag]
		c.pendingMu.Unlock()
		if !ok {
			c.log.Warn("routeros: reply for unknown tag", "tag", tag, "type", sentence.Type)
			continue
		}

		resp.UpdateWithSentence(sentence)
		if sentence.Type == "!done" {
			c.pendingRemove(tag)
		}
	}
}

// fail logs a fatal read/protocol error and tears the connection down.
func (c *Connection) fail(err error) {
	c.log.Warn("routeros: connection failed", "error", err)
	c.mu.Lock()
	c.closeLocked()
	c.mu.Unlock()
}

// idleMonitor closes the connection once IdleTimeout has elapsed since the
// last recorded activity (an Open call or a successful read), a
// cancellation event for every request still in flight.
func (c *Connection) idleMonitor(closed chan struct{}) {
	defer c.wg.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			if c.idleSince() >= c.cfg.IdleTimeout {
				c.mu.Lock()
				c.closeLocked()
				c.mu.Unlock()
				return
			}
		}
	}
}
