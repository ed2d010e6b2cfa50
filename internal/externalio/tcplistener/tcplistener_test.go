package tcplistener

import (
	"aisfeed/internal/setting"
	"aisfeed/pkg/ais"
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

type testClient struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (client testClient) readLine(t *testing.T) (line string) {
	t.Helper()
	client.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := client.reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startServer(t *testing.T, options map[string]string) (mod *OutModule, port string) {
	t.Helper()
	mod = New()
	for option, arg := range options {
		if _, err := mod.Set(option, arg); err != nil {
			t.Fatalf("set %s: %v", option, err)
		}
	}
	if err := mod.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { mod.Stop(context.Background()) })
	port = strconv.Itoa(mod.Addr().(*net.TCPAddr).Port)
	return
}

func connect(t *testing.T, mod *OutModule, port string, count int) (clients []testClient) {
	t.Helper()
	for i := 0; i < count; i++ {
		conn, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", port))
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		t.Cleanup(func() { conn.Close() })
		clients = append(clients, testClient{conn: conn, reader: bufio.NewReader(conn)})
	}
	waitFor(t, "clients registered", func() bool { return mod.server.Clients() == count })
	return
}

func TestBroadcastToAllClients(t *testing.T) {
	mod, port := startServer(t, map[string]string{"TIMEOUT": "1"})
	clients := connect(t, mod, port, 3)
	ctx := context.Background()

	msg := []ais.Message{{NMEA: []string{"!AIVDM,1,1,,A,first,0*00"}, Type: 1}}
	mod.ReceiveMessages(ctx, msg, ais.Tag{})
	for i, client := range clients {
		if got := client.readLine(t); got != "!AIVDM,1,1,,A,first,0*00\r\n" {
			t.Fatalf("client %d got %q", i, got)
		}
	}

	// Client 1 fails; only it is removed
	clients[1].conn.Close()
	ping := []ais.Fix{{Sentence: "$GPGGA,ping"}}
	waitFor(t, "failed client removed", func() bool {
		mod.ReceiveFixes(ctx, ping, ais.Tag{})
		return mod.server.Clients() == 2
	})

	msg[0].NMEA = []string{"!AIVDM,1,1,,A,second,0*00"}
	mod.ReceiveMessages(ctx, msg, ais.Tag{})
	for _, i := range []int{0, 2} {
		for {
			got := clients[i].readLine(t)
			if got == "$GPGGA,ping\r\n" {
				continue
			}
			if got != "!AIVDM,1,1,,A,second,0*00\r\n" {
				t.Fatalf("client %d got %q", i, got)
			}
			break
		}
	}
}

func TestStopReleasesClients(t *testing.T) {
	mod, port := startServer(t, nil)
	clients := connect(t, mod, port, 2)

	mod.Stop(context.Background())

	for i, client := range clients {
		client.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, err := client.reader.ReadByte(); err == nil {
			t.Fatalf("client %d should see a closed connection", i)
		}
	}
	if late, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", port), 500*time.Millisecond); err == nil {
		late.Close()
		t.Fatalf("no accepts expected after stop")
	}

	// Delivery after stop is a no-op
	mod.ReceiveMessages(context.Background(), []ais.Message{{NMEA: []string{"x"}, Type: 1}}, ais.Tag{})
}

func TestStartTwiceAndOptions(t *testing.T) {
	mod, _ := startServer(t, map[string]string{"JSON": "true"})
	if err := mod.Start(context.Background()); !errors.Is(err, setting.ErrStartup) {
		t.Fatalf("expected startup error on second start, got %v", err)
	}

	tests := []struct {
		option  string
		arg     string
		wantErr bool
	}{
		{"PORT", "65535", false},
		{"PORT", "-1", true},
		{"TIMEOUT", "0", false},
		{"TIMEOUT", "31", true},
		{"PORT", "70000", true},
		{"HOST", "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.option+"="+tt.arg, func(t *testing.T) {
			_, err := New().Set(tt.option, tt.arg)
			if tt.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStalledClientDoesNotBlockDelivery(t *testing.T) {
	mod, port := startServer(t, nil)
	clients := connect(t, mod, port, 2)
	ctx := context.Background()

	// clients[0] never reads; clients[1] drains until it sees the tail line
	seen := make(chan struct{})
	go func() {
		for {
			line, err := clients[1].reader.ReadString('\n')
			if err != nil {
				return
			}
			if line == "$GPGGA,tail\r\n" {
				close(seen)
				return
			}
		}
	}()

	big := []ais.Message{{NMEA: []string{strings.Repeat("!", 64*1024)}, Type: 1}}
	deadline := time.Now().Add(10 * time.Second)
	for mod.server.Clients() == 2 {
		if time.Now().After(deadline) {
			t.Fatalf("client that does not read was never dropped")
		}
		mod.ReceiveMessages(ctx, big, ais.Tag{})
		time.Sleep(time.Millisecond)
	}

	mod.ReceiveFixes(ctx, []ais.Fix{{Sentence: "$GPGGA,tail"}}, ais.Tag{})
	select {
	case <-seen:
	case <-time.After(3 * time.Second):
		t.Fatalf("reading client stopped receiving")
	}

	stopped := make(chan struct{})
	go func() {
		mod.Stop(ctx)
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatalf("stop did not return")
	}
}

func TestRejectedPortKeepsPrevious(t *testing.T) {
	mod := New()
	if _, err := mod.Set("PORT", "5012"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := mod.Set("PORT", "99999"); err == nil {
		t.Fatalf("expected range error")
	}
	if mod.port != "5012" {
		t.Fatalf("rejected value changed port to %q", mod.port)
	}
}
