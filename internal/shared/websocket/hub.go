package websocket

import (
	"context"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/shared/logger"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Hub keeps the client registry and handles message broadcasting. Clients
// are grouped by the auction they watch.
type Hub struct {
	clients map[string]map[*Client]bool
	// inbound messages from the clients
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	// InboundMessages is listened to by module-specific handlers (the auction ws handler)
	InboundMessages chan *ClientMessage
}

// Client represents one ws connection watching a single auction
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	// Buffered channel of outbound messages.
	Send chan []byte
	// The auction this client is subscribed to.
	AuctionID string
	ID        string
}

type Message struct {
	AuctionID string
	Data      []byte
}

// ClientMessage wraps the client together with the data it sent
type ClientMessage struct {
	Client *Client
	Data   []byte
}

func NewHub() *Hub {
	return &Hub{
		broadcast:       make(chan *Message),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		clients:         make(map[string]map[*Client]bool),
		InboundMessages: make(chan *ClientMessage),
	}
}

// Run starts the hub listening on its channels
func (h *Hub) Run(ctx context.Context) {
	log.Info("Websocket Hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info("WebSocket Hub shutting down due to context cancellation")
			return

		case client := <-h.register:
			if _, ok := h.clients[client.AuctionID]; !ok {
				h.clients[client.AuctionID] = make(map[*Client]bool)
			}
			h.clients[client.AuctionID][client] = true
			log.Info("Client registered",
				zap.String("clientID", client.ID),
				zap.String("auctionID", client.AuctionID),
			)

		case client := <-h.unregister:
			if clients, ok := h.clients[client.AuctionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					log.Info("Client unregistered",
						zap.String("clientID", client.ID),
						zap.String("auctionID", client.AuctionID),
					)
					if len(clients) == 0 {
						delete(h.clients, client.AuctionID)
					}
				}
			}

		case message := <-h.broadcast:
			if clients, ok := h.clients[message.AuctionID]; ok {
				log.Debug("Broadcasting message to auction",
					zap.String("auctionID", message.AuctionID),
					zap.Int("clients", len(clients)),
				)
				for client := range clients {
					select {
					case client.Send <- message.Data:
					default:
						// client probably disconnected, drop it
						close(client.Send)
						delete(clients, client)
						log.Warn("Failed to send message to client, unregistering",
							zap.String("clientID", client.ID),
							zap.String("auctionID", client.AuctionID),
						)
					}
				}
			}
		}
	}
}

// RegisterClient registers a new client in the hub
func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	default:
		log.Error("Register channel is full, client registration failed",
			zap.String("clientID", client.ID),
			zap.String("auctionID", client.AuctionID),
		)
		_ = client.Conn.Close()
	}
}

// UnregisterClient removes a client from the hub
func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	default:
		log.Error("Unregister channel is full, client unregistration failed",
			zap.String("clientID", client.ID),
			zap.String("auctionID", client.AuctionID),
		)
	}
}

// BroadcastToAuction sends a message to every client subscribed to an auction
func (h *Hub) BroadcastToAuction(auctionID string, data []byte) {
	select {
	case h.broadcast <- &Message{AuctionID: auctionID, Data: data}:
	default:
		log.Error("Broadcast channel is full, message dropped", zap.String("auctionID", auctionID))
	}
}

// ReadPump reads messages from the ws connection and forwards them to the
// hub's inbound channel. Runs in its own goroutine per client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.Hub.UnregisterClient(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("WebSocket read error",
					zap.String("clientID", c.ID),
					zap.String("auctionID", c.AuctionID),
					zap.Error(err),
				)
			}
			break
		}

		select {
		case c.Hub.InboundMessages <- &ClientMessage{Client: c, Data: message}:
		default:
			// handlers are not keeping up, drop the message
			log.Error("Hub InboundMessages channel is full, dropping message",
				zap.String("clientID", c.ID),
				zap.String("auctionID", c.AuctionID),
			)
		}
	}
}

// WritePump pumps messages from the hub to the ws connection. One goroutine
// per connection, which keeps a single writer on the conn.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Hub.UnregisterClient(c)
		c.Conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return

		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn("WebSocket write error",
					zap.String("clientID", c.ID),
					zap.String("auctionID", c.AuctionID),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
