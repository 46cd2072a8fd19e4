package notify

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// OfflineNotice builds the localized SMS body telling an offline user that a
// message from senderName is waiting for them
func OfflineNotice(localizer *i18n.Localizer, senderName string) string {
	return localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID:    "new-message-notice",
		TemplateData: map[string]string{"Sender": senderName},
	})
}

// BroadcastNotice builds the localized SMS body for a new message on the
// to-all-doctors thread
func BroadcastNotice(localizer *i18n.Localizer, senderName string) string {
	return localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID:    "broadcast-notice",
		TemplateData: map[string]string{"Sender": senderName},
	})
}
