package domain

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleParticipant Role = "participant"
)

// Administrative lifecycle operations are reserved for admins, participants
// only place and withdraw bids.

func CanCreateAuction(role Role) bool { return role == RoleAdmin }

func CanFinalizeAuction(role Role) bool { return role == RoleAdmin }

func CanProcessPaymentDeadline(role Role) bool { return role == RoleAdmin }

func CanConfirmPayment(role Role) bool { return role == RoleAdmin }
