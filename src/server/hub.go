package server

import (
	"encoding/json"
	"net/http"

	"github.com/arbstatistix/financial-engineering/src/config"
	"github.com/arbstatistix/financial-engineering/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *ConfigServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.setConnections(0)
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.setConnections(len(s.clients))

			// Send initial state on connect
			s.stateMutex.RLock()
			initial := *s.latestState
			s.stateMutex.RUnlock()
			initial.Type = "INITIAL"
			client.send <- &initial

		case client := <-s.resend:
			if _, ok := s.clients[client]; !ok {
				continue
			}
			s.stateMutex.RLock()
			response := *s.latestState
			s.stateMutex.RUnlock()
			response.Type = "INITIAL"

			select {
			case client.send <- client.filter(&response):
			default:
			}

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
				s.setConnections(len(s.clients))
			}

		case message := <-s.broadcast:
			for client := range s.clients {
				select {
				case client.send <- client.filter(message):
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.setConnections(len(s.clients))
		}
	}
}

func (s *ConfigServer) setConnections(n int) {
	s.stateMutex.Lock()
	s.connections = n
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// pushState queues state for every connected client.
func (s *ConfigServer) pushState(state *models.MConfigState) {
	select {
	case s.broadcast <- state:
	case <-s.done:
	}
}

// Publish records a successful reload and pushes the provider's current
// configuration as an update.
// Publishes are serialized so each change count is taken against the state
// pushed just before it.
func (s *ConfigServer) Publish() {
	s.publishMutex.Lock()
	defer s.publishMutex.Unlock()

	state := s.stateOf("UPDATE")

	s.stateMutex.Lock()
	prev := s.latestState.Entries
	s.latestState = state
	s.history.Append(models.MReloadEvent{
		At:      state.LoadedAt,
		Source:  state.Source,
		Status:  "loaded",
		Changes: len(config.Diff(prev, state.Entries)),
	})
	s.stateMutex.Unlock()

	s.pushState(state)
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MConfigState, 16),
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage applies a subscribe command and answers with the
// current state narrowed to the requested domains.
func (s *ConfigServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}
	client.setDomains(cmd.Domains)

	// the hub owns client.send, so it answers
	select {
	case s.resend <- client:
	case <-s.done:
	}
}
