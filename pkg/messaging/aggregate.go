package messaging

import (
	"log"

	"github.com/medisure/medisurechat/pkg/chat"
	"github.com/medisure/medisurechat/pkg/directory"
)

// Aggregate folds the full record list into the conversations visible to one
// viewer. Records sharing a conversation key merge into one view with their
// entries appended in store order; views come out in first-seen key order.
// A participant whose profile lookup fails is shown as nil without dropping
// the conversation's messages. Views with nobody to talk to are suppressed:
// records naming no participant besides the viewer, and views where no
// profile resolved at all. The broadcast thread is exempt and shows whenever
// it has entries.
func Aggregate(records []chat.ConversationRecord, viewerID string, viewerRole chat.Role, dir directory.UserDirectory) []chat.ConversationView {
	views := make(map[string]*chat.ConversationView)
	selfOnly := make(map[string]bool)
	var order []string

	for _, record := range records {
		if !visibleTo(record, viewerID, viewerRole) {
			continue
		}
		key := chat.ConversationKey(viewerRole, viewerID, record)
		if view, ok := views[key]; ok {
			// Duplicate keys append, never dedupe: two records with the
			// same participants are one conversation with all entries kept
			view.Entries = append(view.Entries, record.Entries...)
			continue
		}
		view := &chat.ConversationView{
			ID:       key,
			Client:   resolveParticipant(dir, record.Client),
			Doctor:   resolveParticipant(dir, record.Doctor),
			Provider: resolveParticipant(dir, record.Provider),
			Entries:  append([]chat.MessageEntry(nil), record.Entries...),
		}
		views[key] = view
		selfOnly[key] = !record.IsBroadcast() && !hasNonSelfParticipant(record, viewerRole)
		order = append(order, key)
	}

	out := make([]chat.ConversationView, 0, len(order))
	for _, key := range order {
		view := views[key]
		if key == chat.BroadcastDoctors {
			if len(view.Entries) > 0 {
				out = append(out, *view)
			}
			continue
		}
		if selfOnly[key] {
			continue
		}
		if view.Client == nil && view.Doctor == nil && view.Provider == nil {
			continue
		}
		out = append(out, *view)
	}
	return out
}

// visibleTo applies the per-role visibility predicate: viewers see records
// naming them in their role's slot, and doctors also see the broadcast thread
func visibleTo(record chat.ConversationRecord, viewerID string, viewerRole chat.Role) bool {
	switch viewerRole {
	case chat.RoleClient:
		return record.Client == viewerID
	case chat.RoleDoctor:
		return record.Doctor == viewerID || record.IsBroadcast()
	case chat.RoleProvider:
		return record.Provider == viewerID
	}
	return false
}

// hasNonSelfParticipant reports whether the record names anyone besides the
// viewer's own role slot
func hasNonSelfParticipant(record chat.ConversationRecord, viewerRole chat.Role) bool {
	switch viewerRole {
	case chat.RoleClient:
		return record.Doctor != "" || record.Provider != ""
	case chat.RoleDoctor:
		return record.Client != "" || record.Provider != ""
	case chat.RoleProvider:
		return record.Client != "" || record.Doctor != ""
	}
	return false
}

// resolveParticipant looks up one slot's profile, degrading to nil on a
// missing user or a failed lookup so the conversation still renders
func resolveParticipant(dir directory.UserDirectory, id string) *chat.UserProfile {
	if id == "" || id == chat.BroadcastDoctors {
		return nil
	}
	profile, err := dir.GetUserProfile(id)
	if err != nil {
		log.Printf("Lookup failed for participant %s: %v", id, err)
		return nil
	}
	return profile
}
