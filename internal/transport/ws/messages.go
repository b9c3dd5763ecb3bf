package ws

// Event types pushed to roster subscribers
const (
	TypeState             = "state"              // full roster snapshot, sent on connect
	TypeParticipantJoined = "participant_joined" // signup
	TypeParticipantLeft   = "participant_left"   // removal
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Version orders snapshots and events of one activity. Clients drop anything
// not newer than what they have already applied.
type StatePayload struct {
	Activity        string   `json:"activity"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
	Version         uint64   `json:"version"`
}

type ParticipantEventPayload struct {
	Activity     string `json:"activity"`
	Email        string `json:"email"`
	Participants int    `json:"participants"`
	Version      uint64 `json:"version"`
}
