// Package i18n holds the process-wide language flag and the static
// translation table for user-facing strings.
package i18n

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"mboaimmo/server/internal/store"
)

type Language string

const (
	FR Language = "fr"
	EN Language = "en"
)

var messages = map[string]map[Language]string{
	"error.invalid_credentials": {
		FR: "Identifiant ou mot de passe incorrect",
		EN: "Invalid identifier or password",
	},
	"error.account_inactive": {
		FR: "Ce compte est désactivé",
		EN: "This account is deactivated",
	},
	"error.generic": {
		FR: "Une erreur est survenue, veuillez réessayer",
		EN: "Something went wrong, please try again",
	},
	"error.not_found": {
		FR: "Introuvable",
		EN: "Not found",
	},
	"error.unauthorized": {
		FR: "Veuillez vous connecter",
		EN: "Please sign in",
	},
	"error.forbidden": {
		FR: "Accès refusé",
		EN: "Access denied",
	},
	"error.image_too_large": {
		FR: "L'image dépasse la taille maximale autorisée",
		EN: "The image exceeds the maximum allowed size",
	},
	"error.image_type": {
		FR: "Format d'image non pris en charge",
		EN: "Unsupported image format",
	},
	"notice.favorite_failed": {
		FR: "Impossible de mettre à jour vos favoris, réessayez",
		EN: "Could not update your favorites, please retry",
	},
	"notice.favorite_added": {
		FR: "Ajouté aux favoris",
		EN: "Added to favorites",
	},
	"notice.favorite_removed": {
		FR: "Retiré des favoris",
		EN: "Removed from favorites",
	},
	"notice.profile_updated": {
		FR: "Profil mis à jour",
		EN: "Profile updated",
	},
	"notice.signed_out": {
		FR: "Vous êtes déconnecté",
		EN: "You are signed out",
	},
	"contact.inquiry": {
		FR: "Bonjour, je suis intéressé par votre annonce",
		EN: "Hello, I am interested in your listing",
	},
}

// Translator serves lookups for the active language and persists the flag
// across restarts through the file store.
type Translator struct {
	mu     sync.RWMutex
	lang   Language
	files  *store.FileStore
	logger *logrus.Logger
}

// New loads the persisted language, defaulting to French. files may be
// nil; the flag is then process-lifetime only.
func New(files *store.FileStore, log *logrus.Logger) *Translator {
	t := &Translator{lang: FR, files: files, logger: log}

	if files != nil {
		var saved Language
		if found, err := files.Read(store.KeyLanguage, &saved); err == nil && found {
			if saved == FR || saved == EN {
				t.lang = saved
			}
		}
	}
	return t
}

func (t *Translator) Language() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

func (t *Translator) SetLanguage(lang Language) error {
	if lang != FR && lang != EN {
		return fmt.Errorf("unsupported language %q", lang)
	}

	t.mu.Lock()
	t.lang = lang
	t.mu.Unlock()

	if t.files != nil {
		if err := t.files.Write(store.KeyLanguage, lang); err != nil {
			t.logger.WithError(err).Warn("Failed to persist language")
			return err
		}
	}
	return nil
}

// T returns the translation for key in the active language. Unknown keys
// come back unchanged so a missing entry is visible instead of silent.
func (t *Translator) T(key string) string {
	return t.In(t.Language(), key)
}

// In returns the translation for key in the given language.
func (t *Translator) In(lang Language, key string) string {
	entry, ok := messages[key]
	if !ok {
		return key
	}
	if msg, ok := entry[lang]; ok {
		return msg
	}
	return entry[FR]
}
