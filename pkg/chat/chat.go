package chat

import "time"

// Role identifies which side of the insurance relationship a user is on
type Role string

const (
	// RoleClient is a patient
	RoleClient Role = "patient"
	// RoleDoctor is a treating doctor
	RoleDoctor Role = "doctor"
	// RoleProvider is an insurance provider
	RoleProvider Role = "insuranceProvider"
)

// BroadcastDoctors is the reserved doctor-slot value for the single thread
// addressed to every doctor
const BroadcastDoctors = "toAllDoctors"

// UserProfile is the directory view of a user. Owned by the auth/profile
// system, read-only here.
type UserProfile struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Role       Role       `json:"role"`
	LastSeenAt *time.Time `json:"lastSeenAt"`
}

// MessageEntry is a single message within a conversation. Sender is the
// sender's username snapshotted at write time and is never updated if the
// user later renames. Timestamp doubles as the entry's key within its thread.
type MessageEntry struct {
	Timestamp string `json:"timestamp"`
	Sender    string `json:"sender"`
	Body      string `json:"message"`
}

// ConversationRecord is the persisted unit: up to three participant slots and
// the ordered messages exchanged between them. An empty slot means no such
// participant and matches only another empty slot when records are compared.
// The participant fields are fixed identity after creation.
type ConversationRecord struct {
	Client   string         `json:"Client,omitempty"`
	Doctor   string         `json:"Doctor,omitempty"`
	Provider string         `json:"Provider,omitempty"`
	Entries  []MessageEntry `json:"messages"`
}

// IsBroadcast reports whether the record is the to-all-doctors thread
func (r ConversationRecord) IsBroadcast() bool {
	return r.Doctor == BroadcastDoctors
}

// SameParticipants reports whether two records share the exact participant
// slots, empty slots included
func (r ConversationRecord) SameParticipants(other ConversationRecord) bool {
	return r.Client == other.Client && r.Doctor == other.Doctor && r.Provider == other.Provider
}

// ParticipantIDs returns the user ids on the record, skipping empty slots and
// the broadcast sentinel
func (r ConversationRecord) ParticipantIDs() []string {
	var ids []string
	for _, id := range []string{r.Client, r.Doctor, r.Provider} {
		if id != "" && id != BroadcastDoctors {
			ids = append(ids, id)
		}
	}
	return ids
}

// ConversationView is a conversation as shown to one viewer: the record's
// entries joined with resolved participant profiles. Built fresh per
// aggregation pass, never persisted. A nil profile means the slot is empty or
// its lookup failed.
type ConversationView struct {
	ID       string         `json:"id"`
	Client   *UserProfile   `json:"userClient"`
	Doctor   *UserProfile   `json:"userDoctor"`
	Provider *UserProfile   `json:"userProvider"`
	Entries  []MessageEntry `json:"messages"`
}
