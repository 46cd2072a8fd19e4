package messaging

import (
	"fmt"

	"github.com/medisure/medisurechat/pkg/chat"
)

// SelectionKind enumerates every recipient combination a sender can pick.
// Which kinds are valid depends on the sender's role: a patient may target
// their doctor and/or provider, a doctor may target a patient and/or
// provider or broadcast to all doctors, and a provider may target a doctor
// and/or patient.
type SelectionKind string

const (
	DoctorOnly        SelectionKind = "doctorOnly"
	ProviderOnly      SelectionKind = "providerOnly"
	ClientOnly        SelectionKind = "clientOnly"
	DoctorAndProvider SelectionKind = "doctorAndProvider"
	DoctorAndClient   SelectionKind = "doctorAndClient"
	ProviderAndClient SelectionKind = "providerAndClient"
	BroadcastDoctors  SelectionKind = "broadcastDoctors"
)

// RecipientSelection is the sender's choice of recipients. Only the id
// fields named by Kind are read; use the constructors to keep the two in
// sync.
type RecipientSelection struct {
	Kind     SelectionKind `json:"kind"`
	Doctor   string        `json:"doctor,omitempty"`
	Provider string        `json:"provider,omitempty"`
	Client   string        `json:"client,omitempty"`
}

// ToDoctor targets a single doctor
func ToDoctor(doctorID string) RecipientSelection {
	return RecipientSelection{Kind: DoctorOnly, Doctor: doctorID}
}

// ToProvider targets a single insurance provider
func ToProvider(providerID string) RecipientSelection {
	return RecipientSelection{Kind: ProviderOnly, Provider: providerID}
}

// ToClient targets a single patient
func ToClient(clientID string) RecipientSelection {
	return RecipientSelection{Kind: ClientOnly, Client: clientID}
}

// ToDoctorAndProvider targets a doctor and a provider together
func ToDoctorAndProvider(doctorID string, providerID string) RecipientSelection {
	return RecipientSelection{Kind: DoctorAndProvider, Doctor: doctorID, Provider: providerID}
}

// ToDoctorAndClient targets a doctor and a patient together
func ToDoctorAndClient(doctorID string, clientID string) RecipientSelection {
	return RecipientSelection{Kind: DoctorAndClient, Doctor: doctorID, Client: clientID}
}

// ToProviderAndClient targets a provider and a patient together
func ToProviderAndClient(providerID string, clientID string) RecipientSelection {
	return RecipientSelection{Kind: ProviderAndClient, Provider: providerID, Client: clientID}
}

// ToAllDoctors targets the shared broadcast thread
func ToAllDoctors() RecipientSelection {
	return RecipientSelection{Kind: BroadcastDoctors}
}

var allowedKinds = map[chat.Role]map[SelectionKind]bool{
	chat.RoleClient: {
		DoctorOnly:        true,
		ProviderOnly:      true,
		DoctorAndProvider: true,
	},
	chat.RoleDoctor: {
		ClientOnly:        true,
		ProviderOnly:      true,
		ProviderAndClient: true,
		BroadcastDoctors:  true,
	},
	chat.RoleProvider: {
		DoctorOnly:      true,
		ClientOnly:      true,
		DoctorAndClient: true,
	},
}

// TargetRecord resolves the selection into the participant slots of the
// conversation it addresses, with the sender's own id filling the slot for
// their role. Unselected slots stay empty and match only empty slots when
// the router searches for an existing record, so picking a different subset
// of recipients for the same people addresses a distinct conversation.
func (s RecipientSelection) TargetRecord(senderID string, senderRole chat.Role) (chat.ConversationRecord, error) {
	if !allowedKinds[senderRole][s.Kind] {
		return chat.ConversationRecord{}, fmt.Errorf("messaging: selection %s not valid for role %s", s.Kind, senderRole)
	}

	if s.Kind == BroadcastDoctors {
		return chat.ConversationRecord{Doctor: chat.BroadcastDoctors}, nil
	}

	var record chat.ConversationRecord
	switch s.Kind {
	case DoctorOnly:
		record.Doctor = s.Doctor
	case ProviderOnly:
		record.Provider = s.Provider
	case ClientOnly:
		record.Client = s.Client
	case DoctorAndProvider:
		record.Doctor = s.Doctor
		record.Provider = s.Provider
	case DoctorAndClient:
		record.Doctor = s.Doctor
		record.Client = s.Client
	case ProviderAndClient:
		record.Provider = s.Provider
		record.Client = s.Client
	}

	switch senderRole {
	case chat.RoleClient:
		record.Client = senderID
	case chat.RoleDoctor:
		record.Doctor = senderID
	case chat.RoleProvider:
		record.Provider = senderID
	}
	return record, nil
}
