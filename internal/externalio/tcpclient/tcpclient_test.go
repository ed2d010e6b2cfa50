package tcpclient

import (
	"aisfeed/internal/output"
	"aisfeed/internal/setting"
	"aisfeed/pkg/ais"
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

var testMsgs = []ais.Message{
	{NMEA: []string{"!AIVDM,1,1,,A,one,0*00"}, Type: 1, Channel: "A"},
}

func newFeed(t *testing.T, addr net.Addr, persist string) (mod *OutModule, stops *atomic.Int32) {
	t.Helper()
	stops = &atomic.Int32{}
	mod = New(output.StopFunc(func(reason string) { stops.Add(1) }))

	tcpAddr := addr.(*net.TCPAddr)
	options := map[string]string{
		"HOST":    tcpAddr.IP.String(),
		"PORT":    strconv.Itoa(tcpAddr.Port),
		"PERSIST": persist,
	}
	for option, arg := range options {
		if _, err := mod.Set(option, arg); err != nil {
			t.Fatalf("set %s: %v", option, err)
		}
	}
	return
}

// Sends until the feed records a failure
func sendUntilFailure(t *testing.T, mod *OutModule) {
	t.Helper()
	ctx := context.Background()
	deadline := time.Now().Add(3 * time.Second)
	for mod.Metrics.Failures.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("send never failed")
		}
		mod.ReceiveMessages(ctx, testMsgs, ais.Tag{})
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDelivery(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	mod, _ := newFeed(t, listener.Addr(), "off")
	mod.Set("JSON", "on")

	ctx := context.Background()
	if err = mod.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer mod.Stop(ctx)

	conn, err := listener.Accept()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	defer conn.Close()

	mod.ReceiveMessages(ctx, testMsgs, ais.Tag{Mode: 3})
	mod.ReceiveFixes(ctx, []ais.Fix{{Lat: 1, Lon: 2, Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}}, ais.Tag{})

	reader := bufio.NewReader(conn)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	first, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if first[:14] != `{"class":"AIS"` {
		t.Errorf("unexpected message line %q", first)
	}
	second, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if second != `{"class":"GPS","time":"20260101000000","lat":1,"lon":2}`+"\r\n" {
		t.Errorf("unexpected fix line %q", second)
	}
}

func TestStartFailure(t *testing.T) {
	// Free port, nothing listening
	reserved, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := reserved.Addr()
	reserved.Close()

	oneShot, _ := newFeed(t, addr, "off")
	if err = oneShot.Start(context.Background()); !errors.Is(err, setting.ErrStartup) {
		t.Fatalf("expected startup error, got %v", err)
	}

	persistent, stops := newFeed(t, addr, "on")
	if err = persistent.Start(context.Background()); err != nil {
		t.Fatalf("persistent feed should start pending: %v", err)
	}
	defer persistent.Stop(context.Background())

	sendUntilFailure(t, persistent)
	if stops.Load() != 0 {
		t.Fatalf("persistent feed must not request termination")
	}
}

func TestSendFailureEscalation(t *testing.T) {
	tests := []struct {
		name      string
		persist   string
		wantStops int32
	}{
		{"one-shot escalates once", "off", 1},
		{"persistent never escalates", "on", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listener, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				t.Fatalf("listen: %v", err)
			}

			mod, stops := newFeed(t, listener.Addr(), tt.persist)
			ctx := context.Background()
			if err = mod.Start(ctx); err != nil {
				t.Fatalf("start: %v", err)
			}
			defer mod.Stop(ctx)

			conn, err := listener.Accept()
			if err != nil {
				t.Fatalf("accept: %v", err)
			}

			// Peer goes away entirely, reconnects are refused
			listener.Close()
			conn.Close()

			sendUntilFailure(t, mod)
			for i := 0; i < 5; i++ {
				mod.ReceiveMessages(ctx, testMsgs, ais.Tag{})
			}

			if got := stops.Load(); got != tt.wantStops {
				t.Fatalf("expected %d termination requests, got %d", tt.wantStops, got)
			}
		})
	}
}

func TestSetUnknown(t *testing.T) {
	_, err := New(nil).Set("RESET", "1")
	if !errors.Is(err, setting.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if err.Error() != "configuration error: TCP output - unknown option: RESET" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

// Accepts one connection and never reads from it
func stalledPeer(t *testing.T) (listener net.Listener) {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	accepted := make(chan net.Conn, 1)
	t.Cleanup(func() {
		listener.Close()
		select {
		case conn := <-accepted:
			conn.Close()
		default:
		}
	})
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			accepted <- conn
		}
	}()
	return
}

var bigMsgs = []ais.Message{
	{NMEA: []string{strings.Repeat("!", 64*1024)}, Type: 1, Channel: "A"},
}

func TestStalledPeerEscalates(t *testing.T) {
	listener := stalledPeer(t)
	mod, stops := newFeed(t, listener.Addr(), "off")
	mod.writeTimeout = 200 * time.Millisecond
	ctx := context.Background()
	if err := mod.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer mod.Stop(ctx)

	deadline := time.Now().Add(10 * time.Second)
	for stops.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("write to a peer that does not read never failed")
		}
		mod.ReceiveMessages(ctx, bigMsgs, ais.Tag{})
	}
	if got := stops.Load(); got != 1 {
		t.Fatalf("expected 1 termination request, got %d", got)
	}
}

func TestStopDuringBlockedSend(t *testing.T) {
	listener := stalledPeer(t)
	mod, stops := newFeed(t, listener.Addr(), "off")
	mod.writeTimeout = time.Minute
	ctx := context.Background()
	if err := mod.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	sending := make(chan struct{})
	go func() {
		defer close(sending)
		for i := 0; i < 2000; i++ {
			mod.ReceiveMessages(ctx, bigMsgs, ais.Tag{})
		}
	}()

	// Let the socket buffers fill
	time.Sleep(500 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		mod.Stop(ctx)
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatalf("stop waited behind a blocked send")
	}
	select {
	case <-sending:
	case <-time.After(5 * time.Second):
		t.Fatalf("delivery still blocked after stop")
	}
	if got := stops.Load(); got != 0 {
		t.Fatalf("stop must not request termination, got %d", got)
	}
}

func TestRejectedPortKeepsPrevious(t *testing.T) {
	mod := New(nil)
	mod.Set("PORT", "4000")
	if _, err := mod.Set("PORT", "65536"); err == nil {
		t.Fatalf("expected range error")
	}
	if mod.port != "4000" {
		t.Fatalf("rejected value changed port to %q", mod.port)
	}
}
