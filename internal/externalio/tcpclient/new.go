package tcpclient

import (
	"aisfeed/internal/global"
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"strings"
)

// Creates an unstarted TCP feed. stop is asked to end the pipeline when a non-persistent feed breaks.
func New(stop output.StopRequester) (mod *OutModule) {
	mod = &OutModule{
		id:      output.NewID(),
		lines:   output.NewLines(),
		stop:    stop,
		Metrics: &output.MetricStorage{},

		writeTimeout: global.TCPWriteTimeout,
	}
	mod.Namespace = []string{global.NSOut, global.NSoTCP, mod.id}
	return
}

func (mod *OutModule) Name() (name string) {
	name = global.NSoTCP
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
	case "PERSIST":
		mod.persistent, err = setting.Switch(arg)
	default:
		var handled bool
		handled, err = mod.lines.SetOption(option, arg)
		if err == nil && !handled {
			err = setting.Unknown(global.NSoTCP, option)
			return
		}
	}

	if err != nil {
		err = setting.Invalid(global.NSoTCP, option, err)
	}
	return
}
