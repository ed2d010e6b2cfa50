package ais

// Renders records to JSON through a dictionary. Safe for concurrent use.
type Builder struct {
	dict Dictionary
}

func NewBuilder(dict Dictionary) (builder *Builder) {
	builder = &Builder{dict: dict}
	return
}

// Changes the dictionary. Configuration-time only.
func (builder *Builder) SetDictionary(dict Dictionary) {
	builder.dict = dict
}

func (builder *Builder) Dictionary() (dict Dictionary) {
	dict = builder.dict
	return
}

// Full per-record JSON object: reception metadata followed by decoded fields
func (builder *Builder) Stringify(msg Message, tag Tag) (record string) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	base := []Field{
		{Key: "class", Value: "AIS"},
		{Key: "device", Value: deviceName},
		{Key: "version", Value: formatVersion},
		{Key: "driver", Value: tag.Mode},
		{Key: "channel", Value: msg.Channel},
		{Key: "signalpower", Value: tag.Level},
		{Key: "ppm", Value: tag.PPM},
		{Key: "rxtime", Value: EncodeTime(msg.RxTime)},
		{Key: "mmsi", Value: msg.MMSI},
		{Key: "type", Value: msg.Type},
	}

	var written int
	write := func(field Field) {
		name, ok := builder.dict.Lookup(field.Key)
		if !ok {
			return
		}
		if written > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		writeValue(stream, field.Value)
		written++
	}

	stream.WriteObjectStart()
	for _, field := range base {
		write(field)
	}
	for _, field := range msg.Fields {
		write(field)
	}
	stream.WriteObjectEnd()

	record = string(stream.Buffer())
	return
}

// Quoted and escaped JSON string
func (builder *Builder) String(value string) (quoted string) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	stream.WriteString(value)
	quoted = string(stream.Buffer())
	return
}
