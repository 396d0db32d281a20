package ip

import (
	"encoding/hex"
	"net"
	"sync"
)

var (
	hexOnce sync.Once
	hexAddr string
)

// IPv4Hex returns the first non-loopback IPv4 address of the host as 8 hex
// chars, or "00000000" if there is none. The lookup runs once per process.
func IPv4Hex() string {
	hexOnce.Do(func() {
		hexAddr = lookupIPv4Hex()
	})
	return hexAddr
}

func lookupIPv4Hex() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "00000000"
	}

	for _, addr := range addrs {
		if ip, ok := addr.(*net.IPNet); ok && !ip.IP.IsLoopback() {
			if ipv4 := ip.IP.To4(); ipv4 != nil {
				return hex.EncodeToString(ipv4)
			}
		}
	}

	return "00000000"
}
