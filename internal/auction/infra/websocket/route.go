package websocket

import (
	"context"

	shared "github.com/MarharytaFilipovych/no-2/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

func parseAuctionID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// RegisterRoutes mounts GET /ws/auctions/:id, upgrading to a websocket that
// joins the auction's broadcast group.
func RegisterRoutes(app *fiber.App, hub *shared.Hub, handler *AuctionWSHandler, ctx context.Context) {
	app.Use("/ws/auctions/:id", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/auctions/:id", websocket.New(func(conn *websocket.Conn) {
		auctionID := conn.Params("id")
		if _, err := parseAuctionID(auctionID); err != nil {
			_ = conn.Close()
			return
		}

		client := &shared.Client{
			Hub:       hub,
			Conn:      conn,
			Send:      make(chan []byte, 16),
			AuctionID: auctionID,
			ID:        uuid.NewString(),
		}
		hub.RegisterClient(client)
		handler.SendInitialState(ctx, client)

		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}))
}
