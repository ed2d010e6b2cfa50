package network

import (
	"fmt"
	"net"
)

// Worst case header sizes, options included
const (
	ip4Overhead int = 60
	ip6Overhead int = 80
	udpOverhead int = 8
	defaultMTU  int = 1500
)

// Largest UDP payload that leaves the egress interface towards destination unfragmented
func MaxUDPPayload(destination net.IP) (maxPayloadSize int, err error) {
	if destination == nil {
		err = fmt.Errorf("no destination address")
		return
	}

	overhead := ip6Overhead + udpOverhead
	if destination.To4() != nil {
		overhead = ip4Overhead + udpOverhead
	}

	iface, err := egressInterface(destination)
	if err != nil {
		return
	}

	mtu := iface.MTU
	if mtu <= 0 {
		mtu = defaultMTU
	}
	maxPayloadSize = mtu - overhead
	return
}

// Interface the kernel routes destination through
func egressInterface(destination net.IP) (iface *net.Interface, err error) {
	// Connecting a UDP socket only consults the route table, nothing is sent
	route, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: destination, Port: 9})
	if err != nil {
		err = fmt.Errorf("no route to %s: %w", destination, err)
		return
	}
	source := route.LocalAddr().(*net.UDPAddr).IP
	route.Close()

	ifaces, err := net.Interfaces()
	if err != nil {
		return
	}
	for i := range ifaces {
		addrs, addrErr := ifaces[i].Addrs()
		if addrErr != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if ok && ipNet.IP.Equal(source) {
				iface = &ifaces[i]
				return
			}
		}
	}

	err = fmt.Errorf("no interface holds source address %s", source)
	return
}
