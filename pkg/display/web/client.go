package web

import (
	"github.com/gorilla/websocket"

	"github.com/crispvm/go-chip8/internal/keypad"
	"github.com/crispvm/go-chip8/pkg/display"
)

// Client is one connected browser.
type Client struct {
	hub  *hub
	conn *websocket.Conn
	Send chan []byte
}

// ReadPump reads key events from the client until the
// connection closes. It runs on its own goroutine per client.
func (c *Client) ReadPump(inputs chan<- display.Input) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case KeyEvent:
			if len(message) < 3 {
				continue
			}
			code := string(message[2:])
			// only bound keys reach the input queue
			if !keypad.DefaultBindings.Mapped(code) {
				continue
			}
			select {
			case inputs <- display.Input{Code: code, Pressed: message[1] == 1}:
			default:
			}
		case PausePlay:
			if len(message) < 2 {
				continue
			}
			if message[1] == 0 {
				c.hub.emu.SendCommand(display.Pause)
			} else {
				c.hub.emu.SendCommand(display.Resume)
			}
		case Reset:
			c.hub.emu.SendCommand(display.Reset)
		case Closing:
			return
		}
	}
}

// WritePump writes queued messages to the client until the
// send channel or the connection closes.
func (c *Client) WritePump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
	}()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}
	}
}
