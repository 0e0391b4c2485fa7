package net

import (
	"net"
	"testing"

	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
)

func TestEntryAddr(t *testing.T) {
	addr, ok := entryAddr(&mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 2), Port: 8888})
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.2:8888", addr)

	_, ok = entryAddr(&mdns.ServiceEntry{Port: 8888})
	assert.False(t, ok, "entries without an IPv4 address are skipped")
	_, ok = entryAddr(&mdns.ServiceEntry{AddrV4: net.IPv4(10, 0, 0, 2)})
	assert.False(t, ok)
	_, ok = entryAddr(nil)
	assert.False(t, ok)
}
