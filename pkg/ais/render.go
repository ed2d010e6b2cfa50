package ais

import (
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	deviceName    string = "AIS-catcher"
	formatVersion int    = 58
)

var api = jsoniter.Config{EscapeHTML: false}.Froze()

// Non-finite floats have no JSON form and are written as null
func writeFloat(stream *jsoniter.Stream, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		stream.WriteNil()
		return
	}
	stream.WriteFloat64(value)
}

// Arbitrary field value; anything the encoder rejects becomes null
func writeValue(stream *jsoniter.Stream, value any) {
	switch number := value.(type) {
	case float64:
		writeFloat(stream, number)
		return
	case float32:
		writeFloat(stream, float64(number))
		return
	}

	encoded, err := api.Marshal(value)
	if err != nil {
		stream.WriteNil()
		return
	}
	stream.WriteRaw(string(encoded))
}

// Compact reception timestamp used across JSON renderings
func EncodeTime(t time.Time) (stamp string) {
	stamp = t.UTC().Format("20060102150405")
	return
}

// Sentence as delivered on NMEA lines
func (fix Fix) NMEA() (line string) {
	line = fix.Sentence
	return
}

// JSON line for a GPS fix
func (fix Fix) JSON() (line string) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField("class")
	stream.WriteString("GPS")
	stream.WriteMore()
	stream.WriteObjectField("time")
	stream.WriteString(EncodeTime(fix.Timestamp))
	stream.WriteMore()
	stream.WriteObjectField("lat")
	writeFloat(stream, fix.Lat)
	stream.WriteMore()
	stream.WriteObjectField("lon")
	writeFloat(stream, fix.Lon)
	stream.WriteObjectEnd()

	line = string(stream.Buffer())
	return
}

// JSON line carrying the raw sentences plus reception metadata
func (msg Message) NMEAJSON(tag Tag) (line string) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField("class")
	stream.WriteString("AIS")
	stream.WriteMore()
	stream.WriteObjectField("device")
	stream.WriteString(deviceName)
	stream.WriteMore()
	stream.WriteObjectField("version")
	stream.WriteInt(formatVersion)
	stream.WriteMore()
	stream.WriteObjectField("driver")
	stream.WriteInt(tag.Mode)
	stream.WriteMore()
	stream.WriteObjectField("channel")
	stream.WriteString(msg.Channel)
	stream.WriteMore()
	stream.WriteObjectField("signalpower")
	writeFloat(stream, tag.Level)
	stream.WriteMore()
	stream.WriteObjectField("ppm")
	writeFloat(stream, tag.PPM)
	stream.WriteMore()
	stream.WriteObjectField("rxtime")
	stream.WriteString(EncodeTime(msg.RxTime))
	stream.WriteMore()
	stream.WriteObjectField("mmsi")
	stream.WriteUint32(msg.MMSI)
	stream.WriteMore()
	stream.WriteObjectField("type")
	stream.WriteInt(msg.Type)
	stream.WriteMore()
	stream.WriteObjectField("nmea")
	stream.WriteArrayStart()
	for i, sentence := range msg.NMEA {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteString(sentence)
	}
	stream.WriteArrayEnd()
	stream.WriteObjectEnd()

	line = string(stream.Buffer())
	return
}
