package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// webServer creates server serving files in staticDir
// and a websocket endpoint whose connections are handed to the returned listener
func webServer(ctx context.Context, addr, staticDir string, log *slog.Logger) (*WebsocketListener, *http.Server) {
	l := NewWSListener(ctx, addr+"/ws")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(l, log))
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("listening", "url", "http://localhost"+portOf(addr), "ws", l.Addr())
	return l, srv
}

// websocketHandler handles the http ws endpoint
// if websocket is succesfully initialized it is passed to WebsocketListener so it can be accepted
func websocketHandler(l *WebsocketListener, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: restrict to the configured host once served behind a proxy
		})
		if err != nil {
			log.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
			return
		}

		select {
		case l.ch <- wsConn{conn: c, remote: r.RemoteAddr}:
		case <-l.ctx.Done():
			c.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

type wsConn struct {
	conn   *websocket.Conn
	remote string
}

// WebsocketListener queues accepted websocket connections
// it mirrors net.Listener but hands out message-oriented connections
type WebsocketListener struct {
	ch     chan wsConn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func NewWSListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan wsConn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

func (l *WebsocketListener) Accept() (wsConn, error) {
	select {
	case c := <-l.ch:
		return c, nil
	case <-l.ctx.Done():
		return wsConn{}, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return ":" + port
	}
	return addr
}
