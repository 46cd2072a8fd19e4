package notify

import (
	"encoding/json"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// LoadLocalizer builds a localizer for the given language from the message
// files in messageDir, falling back to English
func LoadLocalizer(messageDir string, lang string) *i18n.Localizer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.MustLoadMessageFile(filepath.Join(messageDir, "en.json"))
	bundle.MustLoadMessageFile(filepath.Join(messageDir, "es.json"))
	if lang != "" {
		return i18n.NewLocalizer(bundle, lang, "en")
	}
	return i18n.NewLocalizer(bundle, "en")
}
