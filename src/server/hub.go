package server

import (
	"encoding/json"
	"net/http"

	"market-pulse/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.connections.Store(int32(len(s.clients)))

			s.stateMutex.RLock()
			latest := s.latestState
			s.stateMutex.RUnlock()
			if latest != nil {
				client.trySend(s.message("INITIAL", *latest, nil))
			}

		case client := <-s.unregister:
			s.drop(client)

		case sub := <-s.subscribe:
			if _, ok := s.clients[sub.client]; !ok {
				break
			}
			sub.client.categories = sub.categories

			s.stateMutex.RLock()
			latest := s.latestState
			s.stateMutex.RUnlock()
			if latest != nil && !sub.client.trySend(s.message("INITIAL", *latest, sub.categories)) {
				s.drop(sub.client)
			}

		case snapshot := <-s.broadcast:
			for client := range s.clients {
				msg := s.message("UPDATE", snapshot, client.categories)
				if !client.trySend(msg) {
					// Slow consumer, disconnect so the hub never blocks
					s.drop(client)
				}
			}

		case <-s.quit:
			for client := range s.clients {
				s.drop(client)
			}
			return
		}
	}
}

// subscription carries a client's category filter to the hub loop.
type subscription struct {
	client     *Client
	categories []models.MCategory
}

// drop must only be called from the hub loop.
func (s *APIServer) drop(client *Client) {
	if _, ok := s.clients[client]; !ok {
		return
	}
	delete(s.clients, client)
	close(client.send)
	s.connections.Store(int32(len(s.clients)))
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast stores snapshot as the latest state and queues it for every
// connected client. A full queue drops the update.
func (s *APIServer) Broadcast(snapshot models.MSnapshotResponse) {
	s.setLatestState(snapshot)

	select {
	case s.broadcast <- snapshot:
	case <-s.quit:
	default:
		s.Logger.Warning("Broadcast queue full, dropping snapshot update")
	}
}

// Connections returns the number of connected websocket clients.
func (s *APIServer) Connections() int {
	return int(s.connections.Load())
}

// -----------------------------------------------------------------------------
// Helper Methods
// -----------------------------------------------------------------------------

func (s *APIServer) setLatestState(snapshot models.MSnapshotResponse) {
	s.stateMutex.Lock()
	s.latestState = &snapshot
	s.stateMutex.Unlock()
}

func (s *APIServer) message(kind string, snapshot models.MSnapshotResponse, categories []models.MCategory) *models.MLatestData {
	return &models.MLatestData{
		Type:     kind,
		Snapshot: filterByCategories(snapshot, categories),
	}
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

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	s.stateMutex.RLock()
	seeded := s.latestState != nil
	s.stateMutex.RUnlock()
	if !seeded {
		s.setLatestState(s.Service.Snapshot(c.Request.Context()))
	}

	client := &Client{
		hub:  s,
		conn: conn,
		send: make(chan *models.MLatestData, 16),
	}

	select {
	case s.register <- client:
	case <-s.quit:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage hands a subscribe command to the hub, which stores the
// filter and answers with the filtered latest snapshot.
func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	select {
	case s.subscribe <- subscription{client: client, categories: parseCategories(cmd.Categories)}:
	case <-s.quit:
	}
}
