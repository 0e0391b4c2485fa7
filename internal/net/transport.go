package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"AreaBoard/internal/state"
)

const (
	// Scheme prefixes share links handed to followers.
	Scheme = "areaboard://"
	// Path is where the hub serves websocket connections.
	Path = "/ws"

	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// Message is the wire envelope sent to followers.
type Message struct {
	Type     string         `json:"type"`
	Snapshot state.Snapshot `json:"snapshot"`
}

// MsgSnapshot carries the full state of one layer.
const MsgSnapshot = "snapshot"

// Peer is one connected follower.
type Peer struct {
	conn *websocket.Conn
	send chan Message
}

// Hub is run by the host to fan layer snapshots out to followers. The newest
// snapshot of every layer is kept so that late joiners start in sync.
type Hub struct {
	mu       sync.RWMutex
	peers    map[string]*Peer
	latest   map[int]state.Snapshot
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		peers:  make(map[string]*Peer),
		latest: make(map[int]state.Snapshot),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Len returns the number of connected followers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Publish records s as the newest state of its layer and queues it for
// every follower. Slow followers drop snapshots rather than block the
// caller; a later snapshot supersedes the dropped one.
func (h *Hub) Publish(s state.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest[s.Layer] = s
	msg := Message{Type: MsgSnapshot, Snapshot: s}
	for addr, p := range h.peers {
		select {
		case p.send <- msg:
		default:
			state.Logger().Warn("[Host] follower is behind, snapshot dropped", "peer", addr, "layer", s.Layer)
		}
	}
}

func (h *Hub) add(addr string, p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[addr] = p
	for _, s := range h.latest {
		select {
		case p.send <- Message{Type: MsgSnapshot, Snapshot: s}:
		default:
		}
	}
	state.Logger().Info("[Host] follower connected", "peer", addr)
}

func (h *Hub) remove(addr string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p, ok := h.peers[addr]; ok {
		close(p.send)
		delete(h.peers, addr)
		state.Logger().Info("[Host] follower disconnected", "peer", addr)
	}
}

// ServeHTTP upgrades the request and streams snapshots until the follower
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		state.Logger().Warn("[Host] upgrade failed", "err", err)
		return
	}
	addr := conn.RemoteAddr().String()
	p := &Peer{conn: conn, send: make(chan Message, sendBuffer)}
	h.add(addr, p)

	go h.writeLoop(p)

	// Followers are read-only; reading only detects the close.
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
	h.remove(addr)
	conn.Close()
}

func (h *Hub) writeLoop(p *Peer) {
	for msg := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := p.conn.WriteJSON(msg); err != nil {
			state.Logger().Warn("[Host] write failed", "peer", p.conn.RemoteAddr().String(), "err", err)
			p.conn.Close()
			return
		}
	}
}

// Serve runs the hub on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	srv := &http.Server{Addr: addr, Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	state.Logger().Info("[Host] sharing board", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// ShareLink returns the link followers use to join host:port.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s:%d", Scheme, host, port)
}

// DialURL turns a share link, a host:port pair or a ws URL into the
// websocket URL of the hub.
func DialURL(link string) string {
	switch {
	case strings.HasPrefix(link, "ws://"), strings.HasPrefix(link, "wss://"):
		return link
	case strings.HasPrefix(link, Scheme):
		link = strings.TrimPrefix(link, Scheme)
	}
	return "ws://" + strings.TrimSuffix(link, "/") + Path
}

// Follow connects to a hub and calls apply for every snapshot newer than
// what has been applied for its layer. It returns when ctx is cancelled or
// the connection drops.
func Follow(ctx context.Context, link string, apply func(state.Snapshot)) error {
	url := DialURL(link)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", url, err)
	}
	defer conn.Close()
	state.Logger().Info("[Follower] connected", "url", url)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	replica := state.NewReplica()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}
		if msg.Type != MsgSnapshot {
			state.Logger().Debug("[Follower] unknown message", "type", msg.Type)
			continue
		}
		if replica.Accept(msg.Snapshot) {
			apply(msg.Snapshot)
		}
	}
}
