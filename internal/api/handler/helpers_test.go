package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"duetchat/backend/internal/api/handler"
	"duetchat/backend/internal/chathub"
	"duetchat/backend/internal/config"
	"duetchat/backend/internal/translate"
	"duetchat/backend/internal/workout"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv bundles the handler under test with its mocks and a router wired
// the same way main wires it.
type testEnv struct {
	Router     *gin.Engine
	Handler    *handler.Handler
	Storage    *MockStorage
	Translator *MockTranslator
	Detector   *MockDetector
}

func newTestEnv() *testEnv {
	storageMock := new(MockStorage)
	translatorMock := new(MockTranslator)
	detectorMock := new(MockDetector)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		PasscodeA: "passcode-a",
		PasscodeB: "passcode-b",
	}

	hub := chathub.NewManagerService(storageMock, nil)
	translations := translate.NewService(storageMock, translatorMock, detectorMock, nil)
	workouts := workout.NewService(storageMock, nil)
	h := handler.NewHandler(hub, storageMock, translations, workouts, cfg, nil)

	router := gin.New()
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/languages", h.GetSupportedLanguages)
	router.POST("/api/workouts", h.CreateWorkout)
	router.GET("/api/workouts", h.GetWorkouts)

	private := router.Group("/")
	private.Use(h.AuthRequired())
	{
		private.POST("/api/messages", h.SendMessage)
		private.GET("/api/messages", h.GetMessages)
		private.DELETE("/api/messages/:id", h.UnsendMessage)
		private.PUT("/api/messages/:id/reaction", h.SetReaction)
		private.DELETE("/api/messages/:id/reaction", h.RemoveReaction)
		private.POST("/api/translations", h.TranslateMessage)
		private.GET("/api/translations/:messageId", h.GetTranslations)
		private.POST("/api/translations/preferences", h.SetTranslationPreference)
	}

	return &testEnv{
		Router:     router,
		Handler:    h,
		Storage:    storageMock,
		Translator: translatorMock,
		Detector:   detectorMock,
	}
}

// login exchanges a role's passcode for a bearer token via the real endpoint.
func (e *testEnv) login(t *testing.T, role, passcode string) string {
	resp := e.do(http.MethodPost, "/api/auth/login", map[string]string{
		"role":     role,
		"passcode": passcode,
	}, "")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// do performs one request against the test router. A non-empty token is sent
// as a bearer Authorization header.
func (e *testEnv) do(method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	e.Router.ServeHTTP(resp, req)
	return resp
}

// decode unmarshals a JSON response body.
func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}
