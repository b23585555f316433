package domain

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "PENDING"
	ConnectionStatusAccepted ConnectionStatus = "ACCEPTED"
	ConnectionStatusDeclined ConnectionStatus = "DECLINED"
)

// ConnectionState is the derived state of an unordered user pair. It extends
// the stored request status with the two synthetic states NONE (no record)
// and BLOCKED (a block row exists in either direction).
type ConnectionState string

const (
	ConnectionStateNone     ConnectionState = "NONE"
	ConnectionStatePending  ConnectionState = "PENDING"
	ConnectionStateAccepted ConnectionState = "ACCEPTED"
	ConnectionStateDeclined ConnectionState = "DECLINED"
	ConnectionStateBlocked  ConnectionState = "BLOCKED"
)

// MaxConnectionMessageLen caps the optional message on a connection request.
const MaxConnectionMessageLen = 500

type ConnectionRequest struct {
	ID          int32            `json:"id"`
	RequesterID int32            `json:"requester_id"`
	ReceiverID  int32            `json:"receiver_id"`
	Status      ConnectionStatus `json:"status"`
	Message     string           `json:"message,omitempty"`
	CreatedOn   string           `json:"created_on"`
	RespondedOn *string          `json:"responded_on,omitempty"`
}

// Involves reports whether userID is one of the two parties.
func (c *ConnectionRequest) Involves(userID int32) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}

// CounterpartyOf returns the other party of the request.
func (c *ConnectionRequest) CounterpartyOf(userID int32) int32 {
	if c.RequesterID == userID {
		return c.ReceiverID
	}
	return c.RequesterID
}

type Block struct {
	BlockerID int32  `json:"blocker_id"`
	BlockedID int32  `json:"blocked_id"`
	CreatedOn string `json:"created_on"`
}

// PairKey normalizes two user ids into the unordered pair key used to
// enforce the one-active-request-per-pair constraint.
func PairKey(a, b int32) (int32, int32) {
	if a > b {
		return b, a
	}
	return a, b
}
