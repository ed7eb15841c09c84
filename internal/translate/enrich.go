package translate

import (
	"duetchat/backend/internal/models"
)

// EnrichMessages joins a page of messages with the viewer's translation
// preferences. Preferences for the whole page are fetched in a single query;
// messages without an explicit preference row get the default (show
// original, no target language). Input order is preserved exactly.
//
// With an empty viewerRole the messages pass through with their translations
// attached and the default preference for every row.
func (s *Service) EnrichMessages(messages []models.Message, viewerRole string) ([]models.EnrichedMessage, error) {
	prefByMessage := map[string]models.TranslationPreference{}

	if viewerRole != "" && len(messages) > 0 {
		ids := make([]string, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.ID)
		}

		prefs, err := s.Storage.GetTranslationPreferences(viewerRole, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range prefs {
			prefByMessage[p.MessageID] = p
		}
	}

	enriched := make([]models.EnrichedMessage, 0, len(messages))
	for _, m := range messages {
		pref, ok := prefByMessage[m.ID]
		if !ok {
			pref = models.DefaultPreference(viewerRole, m.ID)
		}
		enriched = append(enriched, models.EnrichedMessage{
			Message:               m,
			TranslationPreference: pref,
		})
	}
	return enriched, nil
}
