package httpout

import (
	"aisfeed/internal/global"
	"aisfeed/pkg/ais"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Multipart form field carrying APRS envelopes
const aprsField string = "jsonais"

// One submission: body plus how it must be posted
type envelope struct {
	body      string
	multipart bool
	field     string
}

// Renders records into the envelope of the configured protocol
func (mod *OutModule) buildEnvelope(records []string, now time.Time) (env envelope) {
	var msg strings.Builder
	str := mod.builder.String

	switch mod.protocol {
	case ProtocolAISCatcher, ProtocolMinimal:
		msg.WriteString(`{"protocol":"jsonaiscatcher","encodetime":"`)
		msg.WriteString(ais.EncodeTime(now))
		msg.WriteString(`","stationid":`)
		msg.WriteString(str(mod.stationID))
		msg.WriteString(`,"receiver":{"description":"`)
		msg.WriteString(global.ReceiverDescription)
		msg.WriteString(`","version":`)
		msg.WriteString(strconv.Itoa(global.VersionNumber))
		msg.WriteString(`,"engine":`)
		msg.WriteString(str(mod.model))
		msg.WriteString(`,"setting":`)
		msg.WriteString(str(mod.modelSetting))
		msg.WriteString(`},"device":{"product":`)
		msg.WriteString(str(mod.product))
		msg.WriteString(`,"vendor":`)
		msg.WriteString(str(mod.vendor))
		msg.WriteString(`,"serial":`)
		msg.WriteString(str(mod.serial))
		msg.WriteString(`,"setting":`)
		msg.WriteString(str(mod.deviceSetting))
		msg.WriteString(`},"msgs":[`)
		writeRecords(&msg, records)
		msg.WriteString(`]}`)

	case ProtocolAirframes:
		msg.WriteString(`{"app":{"name":"`)
		msg.WriteString(global.AirframesAppName)
		msg.WriteString(`","ver":"`)
		msg.WriteString(global.ProgVersion)
		msg.WriteString(`"},"source":{"transport":"vhf","protocol":"ais","station_id":`)
		msg.WriteString(str(mod.stationID))
		msg.WriteString(fmt.Sprintf(`,"lat":%f,"lon":%f`, mod.lat, mod.lon))
		msg.WriteString(`},"msgs":[`)
		writeRecords(&msg, records)
		msg.WriteString(`]}`)

	case ProtocolAPRS:
		msg.WriteString(`{"protocol":"jsonais","encodetime":"`)
		msg.WriteString(ais.EncodeTime(now))
		msg.WriteString(`","groups":[{"path":[{"name":`)
		msg.WriteString(str(mod.stationID))
		msg.WriteString(`,"url":`)
		msg.WriteString(str(mod.url))
		msg.WriteString(`}],"msgs":[`)
		writeRecords(&msg, records)
		msg.WriteString(`]}]}`)
		env.multipart = true
		env.field = aprsField

	case ProtocolList:
		for _, record := range records {
			msg.WriteString(record)
			msg.WriteByte('\n')
		}
	}

	env.body = msg.String()
	return
}

// First record is preceded by a space, the rest by a comma
func writeRecords(msg *strings.Builder, records []string) {
	delim := byte(' ')
	for _, record := range records {
		msg.WriteByte(delim)
		msg.WriteString(record)
		delim = ','
	}
}
