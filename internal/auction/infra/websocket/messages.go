package websocket

import (
	"github.com/MarharytaFilipovych/no-2/internal/auction/application"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MessageType identifies the ws message kind
type MessageType string

const (
	MessageTypeClientBid           MessageType = "client_bid"            // client places a bid
	MessageTypeServerAuctionUpdate MessageType = "server_auction_update" // server pushes updated auction state
	MessageTypeServerError         MessageType = "server_error"
	MessageTypeServerInitialState  MessageType = "server_initial_state" // sent to a client right after it connects
)

// BaseMessage is the envelope shared by all ws messages
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// ClientBidMessage is the DTO for a bid sent by the client
type ClientBidMessage struct {
	BaseMessage
	Payload struct {
		AuctionID uuid.UUID       `json:"auction_id"`
		UserID    uuid.UUID       `json:"user_id"`
		Amount    decimal.Decimal `json:"amount"`
	} `json:"payload"`
}

// ServerAuctionUpdateMessage pushes the visibility-filtered auction state
type ServerAuctionUpdateMessage struct {
	BaseMessage
	Payload application.AuctionStateDTO `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}

type ServerInitialStateMessage struct {
	BaseMessage
	Payload application.AuctionStateDTO `json:"payload"`
}
