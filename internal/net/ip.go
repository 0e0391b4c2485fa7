package net

import (
	"net"

	"AreaBoard/internal/state"
)

// GetOutgoingIP finds the preferred local IP address to put in share links.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route out; look at the interfaces instead.
		return localIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

func localIPFallback() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	if ip := firstIPv4(addrs); ip != "" {
		return ip, nil
	}
	state.Logger().Warn("[Net] no suitable local IP found, share link uses loopback")
	return "127.0.0.1", nil
}

func firstIPv4(addrs []net.Addr) string {
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return ""
}
