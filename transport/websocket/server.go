package websocket

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-pad/internal/render"
	"github.com/rocketscienceinc/tictactoe-pad/internal/usecase"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	sendBuffer = 16
)

type frameSource interface {
	Subscribe(fn usecase.FrameListener) func()
}

// Server pushes every frame of the session to connected clients. Clients
// cannot change the game; anything they send is discarded.
type Server struct {
	logger   zerolog.Logger
	frames   frameSource
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan render.Frame
	done chan struct{}
	once sync.Once
}

func (that *client) close() {
	that.once.Do(func() { close(that.done) })
}

func New(logger zerolog.Logger, frames frameSource) *Server {
	return &Server{
		logger: logger.With().Str("component", "websocket").Logger(),
		frames: frames,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP - upgrades the request and streams frames until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan render.Frame, sendBuffer),
		done: make(chan struct{}),
	}

	if !that.register(c) {
		_ = conn.Close()
		return
	}
	defer that.unregister(c)

	log := that.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Info().Msg("websocket connection established")

	// the first frame delivered is the current one
	unsubscribe := that.frames.Subscribe(func(frame render.Frame) {
		select {
		case c.send <- frame:
		default:
			log.Warn().Int("moves", frame.Game.Moves).Msg("client is slow, frame dropped")
		}
	})
	defer unsubscribe()

	go that.writePump(log, c)

	if err = that.readPump(c); err != nil {
		log.Debug().Err(err).Msg("websocket closed")
	}

	c.close()
}

// Shutdown - closes every open connection and refuses new ones.
func (that *Server) Shutdown() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	for c := range that.clients {
		c.close()
	}
}

func (that *Server) register(c *client) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	that.clients[c] = struct{}{}

	return true
}

func (that *Server) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, c)
}

func (that *Server) readPump(c *client) error {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}
	}
}

func (that *Server) writePump(log zerolog.Logger, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.send:
			if err := that.write(c.conn, frameMessage(frame)); err != nil {
				log.Debug().Err(err).Msg("failed to send frame")
				c.close()
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug().Err(err).Msg("failed to send ping")
				c.close()
				_ = c.conn.Close()
				return
			}
		case <-c.done:
			message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing")
			if err := c.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait)); err != nil &&
				!errors.Is(err, websocket.ErrCloseSent) {
				log.Debug().Err(err).Msg("failed to send close")
			}
			_ = c.conn.Close()
			return
		}
	}
}

func (that *Server) write(conn *websocket.Conn, message Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
