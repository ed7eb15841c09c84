package translate

import (
	"context"
	"time"

	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/models"
	"duetchat/backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// Service orchestrates translation requests: validation, cache lookup,
// provider call on miss and best-effort cache write. All collaborators are
// injected so tests can run against doubles.
type Service struct {
	Storage  storage.Storage
	Provider Translator
	Detector Detector
	Mapper   *LanguageMapper
	Logger   *logrus.Logger
}

// NewService creates the translation orchestrator.
func NewService(s storage.Storage, provider Translator, detector Detector, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		Storage:  s,
		Provider: provider,
		Detector: detector,
		Mapper:   NewLanguageMapper(),
		Logger:   logger,
	}
}

// Request is a validated-at-the-boundary translation request.
type Request struct {
	MessageID      string `json:"messageId"`
	TargetLanguage string `json:"targetLanguage"`
	// SourceLanguage is optional; empty or "auto" triggers detection.
	SourceLanguage string `json:"sourceLanguage"`
}

// Result is the outcome of a translation request.
type Result struct {
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	OriginalText   string `json:"original_text"`
	Cached         bool   `json:"cached"`
}

// Translate runs the full pipeline for one request. At most one cache read,
// one provider call and one cache write happen per invocation.
func (s *Service) Translate(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	msg, err := s.Storage.GetMessageByID(req.MessageID)
	if err != nil {
		return nil, &apperrors.StorageError{Code: apperrors.CodeTranslationFailed, Op: "fetch message", Err: err}
	}
	if msg == nil {
		return nil, &apperrors.NotFoundError{
			Code:     apperrors.CodeMessageNotFound,
			Resource: "message",
			ID:       req.MessageID,
		}
	}
	if msg.Deleted || msg.Type != models.MessageTypeText || msg.Text == nil || *msg.Text == "" {
		return nil, &apperrors.ConflictError{
			Code:    apperrors.CodeNothingToTranslate,
			Message: "message has no text content to translate",
		}
	}
	text := *msg.Text

	sourceLang, err := s.resolveSource(ctx, req.SourceLanguage, text)
	if err != nil {
		return nil, err
	}

	if s.Mapper.ToBackendCode(sourceLang) == s.Mapper.ToBackendCode(req.TargetLanguage) {
		return nil, &apperrors.ConflictError{
			Code:    apperrors.CodeSameLanguage,
			Message: "message is already in the requested language",
		}
	}

	cached, err := s.Storage.GetTranslation(req.MessageID, sourceLang, req.TargetLanguage)
	if err != nil {
		return nil, &apperrors.StorageError{Code: apperrors.CodeTranslationFailed, Op: "cache lookup", Err: err}
	}
	if cached != nil {
		translationCacheLookups.WithLabelValues("hit").Inc()
		return &Result{
			TranslatedText: cached.TranslatedText,
			SourceLanguage: sourceLang,
			TargetLanguage: req.TargetLanguage,
			OriginalText:   text,
			Cached:         true,
		}, nil
	}
	translationCacheLookups.WithLabelValues("miss").Inc()

	// A disconnecting caller must not abandon the provider call or the
	// cache write: the work is already paid for, and finishing it turns
	// the inevitable retry into a cache hit.
	detached := context.WithoutCancel(ctx)

	start := time.Now()
	translated, err := s.Provider.Translate(detached, text,
		s.Mapper.ToBackendCode(sourceLang), s.Mapper.ToBackendCode(req.TargetLanguage))
	if err != nil {
		providerRequestsTotal.WithLabelValues("error").Inc()
		providerRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	providerRequestsTotal.WithLabelValues("ok").Inc()
	providerRequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	entry := &models.Translation{
		MessageID:      req.MessageID,
		SourceLanguage: sourceLang,
		TargetLanguage: req.TargetLanguage,
		TranslatedText: translated,
	}
	if err := s.Storage.SaveTranslation(entry); err != nil {
		// The translation is already in hand; losing the cache entry
		// costs a future provider call, not this request.
		translationCacheWriteFailures.Inc()
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"message_id":  req.MessageID,
			"source_lang": sourceLang,
			"target_lang": req.TargetLanguage,
		}).Error("Failed to write translation cache entry")
	}

	return &Result{
		TranslatedText: translated,
		SourceLanguage: sourceLang,
		TargetLanguage: req.TargetLanguage,
		OriginalText:   text,
		Cached:         false,
	}, nil
}

// ListTranslations returns the cached translations of one message,
// optionally narrowed to a target language.
func (s *Service) ListTranslations(messageID, targetLang string) ([]models.Translation, error) {
	if messageID == "" {
		return nil, apperrors.NewValidation("messageId", "must be a non-empty string")
	}
	if targetLang != "" && !IsSupported(targetLang) {
		return nil, apperrors.NewValidation("targetLanguage", "unsupported language code")
	}

	out, err := s.Storage.GetTranslationsForMessage(messageID, targetLang)
	if err != nil {
		return nil, &apperrors.StorageError{Code: apperrors.CodeTranslationFailed, Op: "list translations", Err: err}
	}
	return out, nil
}

func validateRequest(req Request) error {
	details := map[string]string{}
	if req.MessageID == "" {
		details["messageId"] = "must be a non-empty string"
	}
	if req.TargetLanguage == "" {
		details["targetLanguage"] = "is required"
	} else if !IsSupported(req.TargetLanguage) {
		details["targetLanguage"] = "unsupported language code"
	}
	if req.SourceLanguage != "" && req.SourceLanguage != Auto && !IsSupported(req.SourceLanguage) {
		details["sourceLanguage"] = "unsupported language code"
	}
	if len(details) > 0 {
		return &apperrors.ValidationError{Details: details}
	}
	return nil
}

// resolveSource turns an optional/auto source language into a concrete one.
func (s *Service) resolveSource(ctx context.Context, requested, text string) (string, error) {
	if requested != "" && requested != Auto {
		return requested, nil
	}

	detected, err := s.Detector.Detect(ctx, text)
	if err != nil {
		return "", err
	}
	return s.Mapper.ToAPICode(detected), nil
}
