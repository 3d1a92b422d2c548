package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickdeals/internal/models"
	"brickdeals/internal/notify"
	"brickdeals/internal/services"
	"brickdeals/internal/structures"
	"brickdeals/internal/testutil"
)

const goodToken = "ExponentPushToken[abc123]"

type mockSubscriberService struct {
	registered   map[string]models.Platform
	updateErr    error
	registerErr  error
	unregistered []string
	sub          *models.Subscriber
	getErr       error
}

func newMockSubscriberService() *mockSubscriberService {
	return &mockSubscriberService{registered: map[string]models.Platform{}}
}

func (m *mockSubscriberService) Register(_ context.Context, token string, platform models.Platform, _ *services.Preferences) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	if !models.ValidPushToken(token) {
		return services.ErrInvalidToken
	}
	m.registered[token] = platform
	return nil
}

func (m *mockSubscriberService) UpdatePreferences(_ context.Context, _ string, _ *services.Preferences) error {
	return m.updateErr
}

func (m *mockSubscriberService) Unregister(_ context.Context, token string) error {
	m.unregistered = append(m.unregistered, token)
	return nil
}

func (m *mockSubscriberService) Get(_ context.Context, _ string) (*models.Subscriber, error) {
	return m.sub, m.getErr
}

func controllerConfig(adminKey string) *structures.Config {
	return &structures.Config{
		Version:  "1.2.0",
		Security: structures.SecurityConfig{AdminKey: adminKey},
		Pricing:  structures.PricingConfig{ManualSlice: 50},
	}
}

func newPushController(svc services.SubscriberServiceInterface, notifier notify.NotifierInterface, adminKey string) *PushController {
	return NewPushController(controllerConfig(adminKey), &testutil.MockLogger{}, svc, notifier)
}

type stubNotifier struct {
	sent    []*models.Subscriber
	sendErr error
}

func (s *stubNotifier) NotifyHotDeal(_ context.Context, _ *models.Deal) int { return 0 }
func (s *stubNotifier) SendTest(_ context.Context, sub *models.Subscriber) error {
	s.sent = append(s.sent, sub)
	return s.sendErr
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRegisterPushToken_OK(t *testing.T) {
	svc := newMockSubscriberService()
	pc := newPushController(svc, &stubNotifier{}, "")

	w := postJSON(pc.RegisterPushToken, `{"token":"`+goodToken+`","platform":"ios"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PlatformIOS, svc.registered[goodToken])

	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestRegisterPushToken_BadToken(t *testing.T) {
	pc := newPushController(newMockSubscriberService(), &stubNotifier{}, "")

	w := postJSON(pc.RegisterPushToken, `{"token":"bad-token","platform":"ios"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterPushToken_MalformedBody(t *testing.T) {
	pc := newPushController(newMockSubscriberService(), &stubNotifier{}, "")

	w := postJSON(pc.RegisterPushToken, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePreferences_UnknownTokenIs404(t *testing.T) {
	svc := newMockSubscriberService()
	svc.updateErr = services.ErrNotFound
	pc := newPushController(svc, &stubNotifier{}, "")

	w := postJSON(pc.UpdateNotificationPreferences, `{"token":"`+goodToken+`","preferences":{"enabled":false}}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePreferences_ServiceErrorIs500(t *testing.T) {
	svc := newMockSubscriberService()
	svc.updateErr = errors.New("db closed")
	pc := newPushController(svc, &stubNotifier{}, "")

	w := postJSON(pc.UpdateNotificationPreferences, `{"token":"`+goodToken+`"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db closed")
}

func TestUnregisterPushToken_OK(t *testing.T) {
	svc := newMockSubscriberService()
	pc := newPushController(svc, &stubNotifier{}, "")

	w := postJSON(pc.UnregisterPushToken, `{"token":"`+goodToken+`"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{goodToken}, svc.unregistered)
}

func TestSendTestNotification_RequiresAdminKey(t *testing.T) {
	pc := newPushController(newMockSubscriberService(), &stubNotifier{}, "secret")

	w := postJSON(pc.SendTestNotification, `{"token":"`+goodToken+`"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSendTestNotification_AcceptsConfiguredKey(t *testing.T) {
	svc := newMockSubscriberService()
	svc.sub = &models.Subscriber{Token: goodToken}
	notifier := &stubNotifier{}
	pc := newPushController(svc, notifier, "secret")

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"token":"`+goodToken+`"}`))
	req.Header.Set("X-API-Key", "secret")
	w := httptest.NewRecorder()
	pc.SendTestNotification(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, goodToken, notifier.sent[0].Token)
}

func TestSendTestNotification_OpenWithoutConfiguredKey(t *testing.T) {
	svc := newMockSubscriberService()
	svc.sub = &models.Subscriber{Token: goodToken}
	pc := newPushController(svc, &stubNotifier{}, "")

	w := postJSON(pc.SendTestNotification, `{"token":"`+goodToken+`"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSendTestNotification_GatewayFailureIs500(t *testing.T) {
	svc := newMockSubscriberService()
	svc.sub = &models.Subscriber{Token: goodToken}
	pc := newPushController(svc, &stubNotifier{sendErr: errors.New("gateway down")}, "")

	w := postJSON(pc.SendTestNotification, `{"token":"`+goodToken+`"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
