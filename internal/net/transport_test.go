package net

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaBoard/internal/state"
)

func snapshot(layer int, version uint64, pts ...state.Coord) state.Snapshot {
	return state.Snapshot{
		Surface: "board",
		Layer:   layer,
		Version: version,
		Style:   state.Style{Color: "#ff0000", Opacity: 0.5, Fill: true, ShowLine: true},
		Points:  pts,
	}
}

func follow(t *testing.T, srv *httptest.Server) <-chan state.Snapshot {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	got := make(chan state.Snapshot, 16)
	go Follow(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+Path, func(s state.Snapshot) {
		got <- s
	})
	return got
}

func receive(t *testing.T, ch <-chan state.Snapshot) state.Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
		return state.Snapshot{}
	}
}

func waitPeers(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.Len() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestLateFollowerGetsLatest(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.Publish(snapshot(0, 1, state.Coord{X: 1, Y: 1}))
	hub.Publish(snapshot(0, 2, state.Coord{X: 1, Y: 1}, state.Coord{X: 2, Y: 2}))

	got := follow(t, srv)
	s := receive(t, got)
	assert.Equal(t, uint64(2), s.Version)
	assert.Len(t, s.Points, 2)
}

func TestPublishReachesFollower(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	got := follow(t, srv)
	waitPeers(t, hub, 1)

	hub.Publish(snapshot(1, 5, state.Coord{X: 3, Y: 4}))
	s := receive(t, got)
	assert.Equal(t, 1, s.Layer)
	assert.Equal(t, []state.Coord{{X: 3, Y: 4}}, s.Points)
}

func TestFollowerIgnoresStaleVersions(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	got := follow(t, srv)
	waitPeers(t, hub, 1)

	hub.Publish(snapshot(0, 3))
	hub.Publish(snapshot(0, 2))
	hub.Publish(snapshot(0, 3))
	hub.Publish(snapshot(0, 4))

	assert.Equal(t, uint64(3), receive(t, got).Version)
	assert.Equal(t, uint64(4), receive(t, got).Version)
	select {
	case s := <-got:
		t.Fatalf("unexpected snapshot %d", s.Version)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFollowerDisconnectRemovesPeer(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	waitPeers(t, hub, 1)

	conn.Close()
	waitPeers(t, hub, 0)
	assert.NotPanics(t, func() { hub.Publish(snapshot(0, 1)) })
}

func TestFollowStopsOnCancel(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- Follow(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), func(state.Snapshot) {})
	}()
	waitPeers(t, hub, 1)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not return")
	}
}

func TestFollowBadAddress(t *testing.T) {
	err := Follow(context.Background(), "127.0.0.1:1", func(state.Snapshot) {})
	assert.Error(t, err)
}

func TestServeShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Serve(ctx, "127.0.0.1:0", NewHub()) }()
	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return")
	}
}

func TestLinks(t *testing.T) {
	link := ShareLink("192.168.1.7", 8888)
	assert.Equal(t, "areaboard://192.168.1.7:8888", link)
	assert.Equal(t, "ws://192.168.1.7:8888/ws", DialURL(link))
	assert.Equal(t, "ws://192.168.1.7:8888/ws", DialURL("192.168.1.7:8888/"))
	assert.Equal(t, "ws://h:1/ws", DialURL("ws://h:1/ws"))
}

func TestFirstIPv4(t *testing.T) {
	_, lan, _ := net.ParseCIDR("192.168.1.7/24")
	lan.IP = net.ParseIP("192.168.1.7")
	loop := &net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)}

	assert.Equal(t, "192.168.1.7", firstIPv4([]net.Addr{loop, lan}))
	assert.Equal(t, "", firstIPv4([]net.Addr{loop}))
}
