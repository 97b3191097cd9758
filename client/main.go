// Interactive test client. Joins a room and lets you drive a paddle
// from the terminal:
//
//	go run ./client -name alice [-room ABC123]
//
// Commands: ready, wait, up, down, quit.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func send(c *websocket.Conn, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.WriteJSON(envelope{Event: event, Data: data})
}

func main() {
	var (
		addr     string
		name     string
		roomCode string
	)
	flag.StringVar(&addr, "addr", "localhost:8080", "server address")
	flag.StringVar(&name, "name", "player", "player name")
	flag.StringVar(&roomCode, "room", "", "room code to join (empty creates a new room)")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop: print every server event.
	go func() {
		defer close(done)
		for {
			var env envelope
			if err := c.ReadJSON(&env); err != nil {
				log.Println("Read error:", err)
				return
			}
			log.Printf("<- %s: %s", env.Event, string(env.Data))
		}
	}()

	join := map[string]string{"playerName": name}
	if roomCode != "" {
		join["roomCode"] = roomCode
	}
	if err := send(c, "join-room", join); err != nil {
		log.Fatalf("Join failed: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		default:
		}

		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		switch strings.TrimSpace(text) {
		case "ready":
			err = send(c, "player-ready", map[string]bool{"ready": true})
		case "wait":
			err = send(c, "player-ready", map[string]bool{"ready": false})
		case "up":
			err = send(c, "paddle-move", map[string]string{"direction": "up"})
		case "down":
			err = send(c, "paddle-move", map[string]string{"direction": "down"})
		case "quit":
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		default:
			continue
		}
		if err != nil {
			log.Println("Write error:", err)
			return
		}
	}
}
