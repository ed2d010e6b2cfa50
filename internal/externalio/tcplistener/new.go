package tcplistener

import (
	"aisfeed/internal/global"
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"strings"
)

// Creates an unstarted TCP server output
func New() (mod *OutModule) {
	mod = &OutModule{
		id:      output.NewID(),
		port:    "0",
		lines:   output.NewLines(),
		Metrics: &output.MetricStorage{},
	}
	mod.Namespace = []string{global.NSOut, global.NSoServer, mod.id}
	return
}

func (mod *OutModule) Name() (name string) {
	name = global.NSoServer
	return
}

func (mod *OutModule) Set(option string, arg string) (self output.Output, err error) {
	self = mod
	option = strings.ToUpper(option)

	switch option {
	case "PORT":
		_, err = setting.Integer(arg, 0, 65535)
		if err == nil {
			mod.port = strings.TrimSpace(arg)
		}
	case "TIMEOUT":
		mod.timeout, err = setting.Integer(arg, 0, global.MaxClientWriteTimeout)
	default:
		var handled bool
		handled, err = mod.lines.SetOption(option, arg)
		if err == nil && !handled {
			err = setting.Unknown(global.NSoServer, option)
			return
		}
	}

	if err != nil {
		err = setting.Invalid(global.NSoServer, option, err)
	}
	return
}
