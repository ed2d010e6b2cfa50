package beats

import (
	"aisfeed/internal/global"
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"strings"
	"time"

	lumberjack "github.com/elastic/go-lumber/client/v2"
)

// Creates an unstarted beats output
func New() (mod *OutModule) {
	mod = &OutModule{
		id:      output.NewID(),
		timeout: int(global.DefaultBeatsTimeout / time.Second),
		lines:   output.NewLines(),
		dial:    dialLumberjack,
		now:     time.Now,
		Metrics: &output.MetricStorage{},
	}
	mod.Namespace = []string{global.NSOut, global.NSoBeats, mod.id}
	return
}

func dialLumberjack(address string, compression int, timeout time.Duration) (client sink, err error) {
	ljClient, err := lumberjack.SyncDial(address,
		lumberjack.CompressionLevel(compression),
		lumberjack.Timeout(timeout))
	if err != nil {
		return
	}
	client = ljClient
	return
}

func (mod *OutModule) Name() (name string) {
	name = global.NSoBeats
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
	case "TIMEOUT":
		mod.timeout, err = setting.Integer(arg, 1, global.MaxHTTPTimeout)
	case "COMPRESSION":
		mod.compression, err = setting.Integer(arg, 0, 9)
	default:
		var handled bool
		handled, err = mod.lines.SetOption(option, arg)
		if err == nil && !handled {
			err = setting.Unknown(global.NSoBeats, option)
			return
		}
	}

	if err != nil {
		err = setting.Invalid(global.NSoBeats, option, err)
	}
	return
}
