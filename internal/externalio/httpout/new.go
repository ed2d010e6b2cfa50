package httpout

import (
	"aisfeed/internal/compress"
	"aisfeed/internal/filter"
	"aisfeed/internal/global"
	"aisfeed/internal/output"
	"aisfeed/pkg/ais"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Creates an unstarted HTTP output with defaults. Configure with Set.
func New() (mod *OutModule) {
	mod = &OutModule{
		id:       output.NewID(),
		timeout:  global.DefaultHTTPTimeout,
		interval: global.DefaultHTTPInterval,
		protocol: ProtocolAISCatcher,
		groups:   global.GroupsAll,
		filter:   filter.NewBasic(),
		builder:  ais.NewBuilder(ais.DictFull),
		queue:    &Queue{},
		tick:     global.HTTPFlushTick,
		now:      time.Now,
		Metrics:  &MetricStorage{},
	}
	mod.Namespace = []string{global.NSOut, global.NSoHTTP, mod.id}

	zip, err := compress.NewGzip(gzip.DefaultCompression)
	if err == nil {
		mod.zip = zip
	} else {
		mod.zip = compress.Unavailable{}
	}
	return
}

// Replaces the transport. Without one, Start builds the net/http poster from URL/USERPWD/TIMEOUT.
func (mod *OutModule) SetPoster(poster Poster) {
	mod.poster = poster
}

func (mod *OutModule) SetCompressor(zip compress.Compressor) {
	mod.zip = zip
}

func (mod *OutModule) Name() (name string) {
	name = global.NSoHTTP
	return
}
