package network

import (
	"aisfeed/internal/global"
	"aisfeed/internal/logctx"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Accepts any number of clients and writes every payload to all of them.
// Each client has its own bounded queue and writer goroutine.
type Server struct {
	timeout  time.Duration // per client write deadline
	backlog  int           // queued payloads per client before it is dropped
	listener net.Listener

	mu      sync.Mutex
	clients map[*serverClient]struct{}
	closed  bool

	drops atomic.Uint64 // clients removed after a failed or overflowing write

	wg sync.WaitGroup // accept loop + client readers and writers
}

type serverClient struct {
	conn   net.Conn
	remote string
	queue  chan []byte
	quit   chan struct{}
	once   sync.Once
}

// Closes the connection and ends the writer, once
func (client *serverClient) close() {
	client.once.Do(func() {
		close(client.quit)
		client.conn.Close()
	})
}

// A zero writeTimeout selects the default deadline
func NewServer(writeTimeout time.Duration) (server *Server) {
	if writeTimeout <= 0 {
		writeTimeout = global.DefaultClientWriteTimeout
	}
	server = &Server{
		timeout: writeTimeout,
		backlog: global.ClientSendBacklog,
		clients: make(map[*serverClient]struct{}),
	}
	return
}

// Binds address and starts accepting in the background
func (server *Server) Start(ctx context.Context, address string) (err error) {
	server.listener, err = ListenTCP(ctx, address)
	if err != nil {
		return
	}

	server.wg.Add(1)
	go server.accept(ctx)
	return
}

func (server *Server) Addr() (addr net.Addr) {
	if server.listener != nil {
		addr = server.listener.Addr()
	}
	return
}

func (server *Server) accept(ctx context.Context) {
	defer server.wg.Done()

	for {
		conn, err := server.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logctx.LogEventLimited(ctx, "accept", time.Minute, global.VerbosityStandard, global.WarnLog,
				"accept failed on %s: %v\n", server.listener.Addr(), err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		client := &serverClient{
			conn:   conn,
			remote: conn.RemoteAddr().String(),
			queue:  make(chan []byte, server.backlog),
			quit:   make(chan struct{}),
		}

		server.mu.Lock()
		if server.closed {
			server.mu.Unlock()
			conn.Close()
			return
		}
		server.clients[client] = struct{}{}
		server.wg.Add(2)
		server.mu.Unlock()

		logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
			"client %s connected\n", client.remote)

		go server.watch(ctx, client)
		go server.write(ctx, client)
	}
}

// Clients are send-only. Reading detects the peer going away between broadcasts.
func (server *Server) watch(ctx context.Context, client *serverClient) {
	defer server.wg.Done()

	_, _ = io.Copy(io.Discard, client.conn)
	if server.remove(client) {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
			"client %s disconnected\n", client.remote)
	}
}

// Drains the client queue onto its connection until the client is closed
func (server *Server) write(ctx context.Context, client *serverClient) {
	defer server.wg.Done()

	for {
		select {
		case <-client.quit:
			return
		case data := <-client.queue:
			client.conn.SetWriteDeadline(time.Now().Add(server.timeout))
			_, err := client.conn.Write(data)
			if err == nil {
				continue
			}
			if server.remove(client) {
				server.drops.Add(1)
				logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
					"dropping client %s: %v\n", client.remote, err)
			}
			return
		}
	}
}

// Returns true if client was still registered
func (server *Server) remove(client *serverClient) (removed bool) {
	server.mu.Lock()
	_, removed = server.clients[client]
	delete(server.clients, client)
	server.mu.Unlock()

	client.close()
	return
}

// Queues data for every client without blocking. A client whose queue is full is dropped.
func (server *Server) SendAll(ctx context.Context, data []byte) (delivered int, dropped int) {
	server.mu.Lock()
	snapshot := make([]*serverClient, 0, len(server.clients))
	for client := range server.clients {
		snapshot = append(snapshot, client)
	}
	server.mu.Unlock()

	for _, client := range snapshot {
		select {
		case client.queue <- data:
			delivered++
			continue
		default:
		}

		if server.remove(client) {
			dropped++
			server.drops.Add(1)
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"dropping client %s: %d payloads pending\n", client.remote, server.backlog)
		}
	}
	return
}

// Clients dropped since the last call
func (server *Server) TakeDrops() (drops uint64) {
	drops = server.drops.Swap(0)
	return
}

func (server *Server) Clients() (count int) {
	server.mu.Lock()
	defer server.mu.Unlock()
	count = len(server.clients)
	return
}

// Closes listener and all clients, then waits for every goroutine to exit
func (server *Server) Stop() {
	server.mu.Lock()
	server.closed = true
	clients := server.clients
	server.clients = make(map[*serverClient]struct{})
	server.mu.Unlock()

	if server.listener != nil {
		server.listener.Close()
	}
	for client := range clients {
		client.close()
	}

	server.wg.Wait()
}
