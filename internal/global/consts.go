package global

import "time"

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgBaseName  string = "aisfeed"
	ProgVersion   string = "v0.58"
	VersionNumber int    = 58

	// Receiver identity reported inside HTTP envelopes (wire constants)
	ReceiverDescription string = "AIS-catcher " + ProgVersion
	AirframesAppName    string = "AIS-Catcher"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Event queue (mostly for variable log verbosity handling)
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	// HTTP output defaults
	DefaultHTTPInterval  int           = 60 // seconds
	DefaultHTTPTimeout   int           = 10 // seconds
	AirframesInterval    int           = 30 // seconds
	MinHTTPInterval      int           = 1
	MaxHTTPInterval      int           = 60 * 60 * 24
	MinHTTPTimeout       int           = 1
	MaxHTTPTimeout       int           = 30
	MaxHTTPResponseBytes int           = 1023
	HTTPFlushTick        time.Duration = 1 * time.Second

	// UDP output bounds
	MinUDPReset int = 1       // minutes
	MaxUDPReset int = 24 * 60 // minutes

	// TCP server per client write deadline and queue
	MaxClientWriteTimeout     int           = 30 // seconds
	DefaultClientWriteTimeout time.Duration = 5 * time.Second
	ClientSendBacklog         int           = 256 // payloads

	// Beats output defaults
	DefaultBeatsTimeout time.Duration = 3 * time.Second

	// Persistent TCP reconnect pacing
	TCPReconnectInterval time.Duration = 5 * time.Second
	TCPConnectTimeout    time.Duration = 5 * time.Second
	TCPWriteTimeout      time.Duration = 5 * time.Second

	// Line terminator for all streaming outputs
	LineEnd string = "\r\n"

	// All groups accepted unless GROUPS_IN narrows it
	GroupsAll uint64 = ^uint64(0)

	// Timeout values
	OutputShutdownTimeout time.Duration = 10 * time.Second

	// Metric query server
	DataPath         string        = "/data/"
	TotalPath        string        = "/total/"
	HTTPReadTimeout  time.Duration = 5 * time.Second
	HTTPWriteTimeout time.Duration = 10 * time.Second
	HTTPIdleTimeout  time.Duration = 30 * time.Second

	// Metric collection defaults
	DefaultMetricInterval  time.Duration = 15 * time.Second
	DefaultMetricRetention time.Duration = 1 * time.Hour

	// Namespacing Name Components
	NSMetric    string = "Metrics"
	NSMetricSrv string = "QueryServer"
	NSTest      string = "Test"
	NSDaemon    string = "Daemon"
	NSOut       string = "Output"
	NSoHTTP     string = "HTTP"
	NSoUDP      string = "UDP"
	NSoTCP      string = "TCP"
	NSoServer   string = "Server"
	NSoBeats    string = "Beats"
)
