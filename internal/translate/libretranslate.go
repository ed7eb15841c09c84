package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"duetchat/backend/internal/apperrors"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLibreTranslateURL is the default base URL for the LibreTranslate API.
	DefaultLibreTranslateURL = "http://localhost:5000"
	// DefaultLibreTranslateTimeout bounds a single provider call. Chat
	// messages are short, so a generous but finite timeout is enough.
	DefaultLibreTranslateTimeout = 30 * time.Second
)

// LibreTranslateClient implements the Translator interface using
// LibreTranslate, a self-hosted open-source machine translation API.
type LibreTranslateClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewLibreTranslateClient creates a new LibreTranslate client. baseURL
// should point to the LibreTranslate server; apiKey may be empty for
// unauthenticated instances.
func NewLibreTranslateClient(baseURL, apiKey string, logger *logrus.Logger) *LibreTranslateClient {
	if baseURL == "" {
		baseURL = DefaultLibreTranslateURL
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &LibreTranslateClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultLibreTranslateTimeout,
		},
		logger: logger,
	}
}

// translateRequest represents a LibreTranslate API request.
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// translateResponse represents a LibreTranslate API response.
type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// errorResponse is the error body LibreTranslate returns on non-200.
type errorResponse struct {
	Error string `json:"error"`
}

// detection is one entry of a /detect response.
type detection struct {
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Translate translates text between two ISO 639-1 language codes. Upstream
// failures come back as *apperrors.ProviderError carrying the provider's
// HTTP status so callers can propagate it verbatim.
func (c *LibreTranslateClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	start := time.Now()

	var ltResp translateResponse
	err := c.post(ctx, "/translate", translateRequest{
		Q:      text,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
		APIKey: c.apiKey,
	}, &ltResp)
	if err != nil {
		return "", err
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": sourceLang,
		"target_lang": targetLang,
		"text_length": len(text),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Translation request completed")

	return ltResp.TranslatedText, nil
}

// Detect returns the provider's best language guess for the text.
func (c *LibreTranslateClient) Detect(ctx context.Context, text string) (string, error) {
	var detections []detection
	err := c.post(ctx, "/detect", translateRequest{Q: text, APIKey: c.apiKey}, &detections)
	if err != nil {
		return "", err
	}
	if len(detections) == 0 {
		return "", &apperrors.ProviderError{
			Status:  http.StatusBadGateway,
			Code:    apperrors.CodeTranslationFailed,
			Message: "provider returned no detection result",
		}
	}

	best := detections[0]
	for _, d := range detections[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return best.Language, nil
}

// CheckHealth verifies that LibreTranslate is ready, using the /languages
// endpoint as the probe.
func (c *LibreTranslateClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/languages", nil)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// post sends one JSON request and decodes the response into out. Non-200
// responses become typed provider errors.
func (c *LibreTranslateClient) post(ctx context.Context, path string, payload, out interface{}) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Error("Translation provider request failed")
		return &apperrors.ProviderError{
			Status:  http.StatusBadGateway,
			Code:    apperrors.CodeTranslationFailed,
			Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		_ = json.Unmarshal(bodyBytes, &errResp)
		if errResp.Error == "" {
			errResp.Error = string(bodyBytes)
		}
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    errResp.Error,
		}).Error("Translation provider returned non-OK status")
		return &apperrors.ProviderError{
			Status:  resp.StatusCode,
			Code:    apperrors.CodeTranslationFailed,
			Message: errResp.Error,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
