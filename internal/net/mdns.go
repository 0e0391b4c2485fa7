package net

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"

	"AreaBoard/internal/state"
)

const serviceType = "_areaboard._tcp"

// Advertise announces a shared board on port over mDNS. Close the returned
// server to withdraw it.
func Advertise(port int, name string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if name == "" {
		name = host
	}

	service, err := mdns.NewMDNSService(name, serviceType, "", "", port, nil, []string{"AreaBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	state.Logger().Info("[mDNS] advertising board", "name", name, "port", port)
	return server, nil
}

// Browse queries the LAN for shared boards for up to timeout and calls found
// with the host:port of each one.
func Browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if addr, ok := entryAddr(e); ok {
				found(addr)
			}
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns query: %w", err)
	}
	return nil
}

// Discover returns the first shared board found before ctx expires.
func Discover(ctx context.Context) (string, error) {
	timeout := 3 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	var first string
	if err := Browse(timeout, func(addr string) {
		if first == "" {
			first = addr
		}
	}); err != nil {
		return "", err
	}
	if first == "" {
		return "", fmt.Errorf("no shared board found on the network")
	}
	return first, nil
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)), true
}
