// Package web implements a display driver that streams frames
// to a browser over a websocket and feeds key events from the
// browser back into the frame loop. Frames are brotli
// compressed and deduplicated by hash before they are sent.
package web

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"

	"github.com/crispvm/go-chip8/internal/keypad"
	"github.com/crispvm/go-chip8/pkg/display"
	"github.com/crispvm/go-chip8/pkg/display/event"
	"github.com/crispvm/go-chip8/pkg/log"
)

func init() {
	driver := &webDriver{}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.addr,
			Type:        "string",
			Description: "Address to serve the web display on",
		},
		{
			Name:        "compression",
			Default:     true,
			Value:       &driver.compression,
			Type:        "bool",
			Description: "Compress frames with brotli",
		},
	})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type webDriver struct {
	addr        string
	compression bool

	h *hub
}

// hub tracks the connected clients and fans frames out to
// them.
type hub struct {
	emu display.Emulator

	clients              map[*Client]bool
	register, unregister chan *Client

	lastFrame []byte

	mu sync.Mutex
}

func (w *webDriver) Initialize(e display.Emulator) {
	w.h = &hub{
		emu:        e,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 4),
		unregister: make(chan *Client, 4),
	}
}

// Start starts the display driver: it serves the websocket
// endpoint and fans incoming frames out to every connected
// client until the frame loop quits.
func (w *webDriver) Start(fb <-chan []byte, evts <-chan event.Event, inputs chan<- display.Input) error {
	logger := log.New()
	h := w.h

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Access-Control-Allow-Origin", "*")

		conn, err := upgrader.Upgrade(wr, r, nil)
		if err != nil {
			logger.Errorf("websocket upgrade failed: %v", err)
			return
		}

		c := &Client{hub: h, conn: conn, Send: make(chan []byte, 64)}
		go c.ReadPump(inputs)
		go c.WritePump()

		h.register <- c
	})

	server := &http.Server{Addr: w.addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("web display server: %v", err)
		}
	}()
	logger.Infof("web display listening on %s", w.addr)

	frames := newCache(32)
	var lastHash uint64

	// the key list clients use to suppress browser defaults
	keyList := append([]byte{KeyList}, []byte(strings.Join(keypad.DefaultBindings.Codes(), "\n"))...)

	for {
		select {
		case f := <-fb:
			hash := xxhash.Sum64(f)
			if hash == lastHash {
				continue // display unchanged
			}
			lastHash = hash

			payload, ok := frames.get(hash)
			if !ok {
				buf := make([]byte, len(f))
				copy(buf, f)
				if w.compression {
					var err error
					payload, err = cbrotli.Encode(buf, cbrotli.WriterOptions{Quality: 7})
					if err != nil {
						logger.Errorf("frame compression failed: %v", err)
						continue
					}
				} else {
					payload = buf
				}
				frames.add(hash, payload)
			}

			msg := append([]byte{Frame}, payload...)
			h.mu.Lock()
			h.lastFrame = msg
			h.mu.Unlock()
			h.sendAll(msg)
		case e := <-evts:
			switch e.Type {
			case event.Title:
				h.sendAll(append([]byte{Title}, []byte(e.Data.(string))...))
			case event.Quit:
				msg := []byte{Quit}
				var loopErr error
				if err, ok := e.Data.(error); ok {
					loopErr = err
					msg = append(msg, []byte(err.Error())...)
				}
				h.sendAll(msg)

				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				_ = server.Shutdown(ctx)
				cancel()
				return loopErr
			}
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			c.Send <- keyList
			if h.lastFrame != nil {
				c.Send <- h.lastFrame
			}
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
		}
	}
}

// sendAll queues a message for every connected client. Clients
// that stop draining their queue lose messages rather than
// stalling the fan-out.
func (h *hub) sendAll(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
		}
	}
}

// Stop stops the display driver.
func (w *webDriver) Stop() error {
	return nil
}
