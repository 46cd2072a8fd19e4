package chat

import "fmt"

// ConversationKey computes the grouping key for a record as seen by one
// viewer. The key is the provider-doctor-client triple with the viewer's own
// id filling the slot for their role, so two viewers of the same shared
// record pool always group their own conversations unambiguously. The
// broadcast thread keys to the sentinel itself no matter what else is on the
// record.
func ConversationKey(viewerRole Role, viewerID string, record ConversationRecord) string {
	if record.IsBroadcast() {
		return BroadcastDoctors
	}
	switch viewerRole {
	case RoleClient:
		return tripleKey(record.Provider, record.Doctor, viewerID)
	case RoleDoctor:
		return tripleKey(record.Provider, viewerID, record.Client)
	case RoleProvider:
		return tripleKey(viewerID, record.Doctor, record.Client)
	}
	return tripleKey(record.Provider, record.Doctor, record.Client)
}

func tripleKey(provider string, doctor string, client string) string {
	return fmt.Sprintf("%s-%s-%s", provider, doctor, client)
}
