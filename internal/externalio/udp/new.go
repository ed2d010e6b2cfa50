package udp

import (
	"aisfeed/internal/global"
	"aisfeed/internal/network"
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"context"
	"net"
	"strings"
	"time"
)

// Creates an unstarted UDP output. stop is asked to end the pipeline if the socket cannot be recreated.
func New(stop output.StopRequester) (mod *OutModule) {
	mod = &OutModule{
		id:    output.NewID(),
		lines: output.NewLines(),
		stop:  stop,
		now:   time.Now,
		dial: func(ctx context.Context, address string, broadcast bool) (net.Conn, error) {
			conn, err := network.DialUDP(ctx, address, broadcast)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
		Metrics: &MetricStorage{},
	}
	mod.Namespace = []string{global.NSOut, global.NSoUDP, mod.id}
	return
}

func (mod *OutModule) Name() (name string) {
	name = global.NSoUDP
	return
}

func (mod *OutModule) Set(option string, arg string) (self output.Output, err error) {
	self = mod
	option = strings.ToUpper(option)

	switch option {
	case "HOST":
		mod.host = arg
	case "PORT":
		_, err = setting.Integer(arg, 0, 65535)
		if err == nil {
			mod.port = strings.TrimSpace(arg)
		}
	case "BROADCAST":
		mod.broadcast, err = setting.Switch(arg)
	case "RESET":
		mod.reset, err = setting.Integer(arg, global.MinUDPReset, global.MaxUDPReset)
	default:
		var handled bool
		handled, err = mod.lines.SetOption(option, arg)
		if err == nil && !handled {
			err = setting.Unknown(global.NSoUDP, option)
			return
		}
	}

	if err != nil {
		err = setting.Invalid(global.NSoUDP, option, err)
	}
	return
}
