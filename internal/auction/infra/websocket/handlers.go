package websocket

import (
	"context"
	"encoding/json"

	"github.com/MarharytaFilipovych/no-2/internal/auction/application"
	"github.com/MarharytaFilipovych/no-2/internal/shared/logger"
	"github.com/MarharytaFilipovych/no-2/internal/shared/websocket"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionWSHandler handles the ws inbound msgs specific to the auction module
type AuctionWSHandler struct {
	auctionService application.AuctionService
	hub            *websocket.Hub
}

func NewAuctionWSHandler(auctionService application.AuctionService, hub *websocket.Hub) *AuctionWSHandler {
	return &AuctionWSHandler{
		auctionService: auctionService,
		hub:            hub,
	}
}

// ListenForMessages consumes the hub inbound channel and dispatches every message
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) {
	log.Info("AuctionWSHandler started listening for inbound messages from hub")
	for {
		select {
		case <-ctx.Done():
			log.Info("AuctionWSHandler stopped listening for inbound messages from hub")
			return
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

func (h *AuctionWSHandler) processMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		h.sendErrorToClient(client, "invalid message format")
		return
	}
	switch baseMsg.Type {
	case MessageTypeClientBid:
		h.handleClientBidMessage(ctx, client, data)
	default:
		h.sendErrorToClient(client, "unknown message type")
	}
}

func (h *AuctionWSHandler) handleClientBidMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var bidMsg ClientBidMessage
	if err := json.Unmarshal(data, &bidMsg); err != nil {
		h.sendErrorToClient(client, "invalid bid message format")
		return
	}

	if bidMsg.Payload.AuctionID.String() != client.AuctionID {
		h.sendErrorToClient(client, "auction ID mismatch")
		return
	}

	cmd := application.PlaceBidDTO{
		AuctionID: bidMsg.Payload.AuctionID,
		UserID:    bidMsg.Payload.UserID,
		Amount:    bidMsg.Payload.Amount,
	}
	if _, err := h.auctionService.PlaceBid(ctx, cmd); err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}

	h.BroadcastAuctionState(ctx, client.AuctionID)
}

// BroadcastAuctionState pushes the current (visibility-filtered) auction
// state to everybody watching it
func (h *AuctionWSHandler) BroadcastAuctionState(ctx context.Context, auctionID string) {
	id, err := parseAuctionID(auctionID)
	if err != nil {
		log.Error("BroadcastAuctionState: bad auction id", zap.String("auctionID", auctionID), zap.Error(err))
		return
	}

	state, err := h.auctionService.GetAuctionState(ctx, id)
	if err != nil {
		log.Error("BroadcastAuctionState: failed to get auction state",
			zap.String("auctionID", auctionID),
			zap.Error(err),
		)
		return
	}

	updateMsg := ServerAuctionUpdateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerAuctionUpdate},
		Payload:     *state,
	}
	data, err := json.Marshal(updateMsg)
	if err != nil {
		log.Error("BroadcastAuctionState: failed to marshal update", zap.Error(err))
		return
	}
	h.hub.BroadcastToAuction(auctionID, data)
}

// SendInitialState ships the auction snapshot to a freshly connected client
func (h *AuctionWSHandler) SendInitialState(ctx context.Context, client *websocket.Client) {
	id, err := parseAuctionID(client.AuctionID)
	if err != nil {
		h.sendErrorToClient(client, "invalid auction id")
		return
	}

	state, err := h.auctionService.GetAuctionState(ctx, id)
	if err != nil {
		h.sendErrorToClient(client, "failed to load auction state")
		return
	}

	msg := ServerInitialStateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerInitialState},
		Payload:     *state,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("SendInitialState: failed to marshal", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		log.Warn("client send channel full or closed, could not send initial state")
	}
}

func (h *AuctionWSHandler) sendErrorToClient(client *websocket.Client, errorMessage string) {
	errMsg := ServerErrorMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerError},
	}
	errMsg.Payload.Error = errorMessage
	data, err := json.Marshal(errMsg)
	if err != nil {
		log.Error("failed to marshal ServerErrorMessage", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		log.Warn("client send channel full or closed, could not send error msg")
	}
}
