package httpgin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/studiodesk/studiodesk/internal/notify"
)

// fakeSubscriber emits a fixed set of notifications and returns.
type fakeSubscriber struct {
	notifications []notify.Notification
	gotUser       uuid.UUID
}

func (f *fakeSubscriber) Subscribe(
	ctx context.Context,
	userID uuid.UUID,
	handler func(ctx context.Context, n notify.Notification),
) error {
	f.gotUser = userID
	for _, n := range f.notifications {
		handler(ctx, n)
	}
	return nil
}

func TestNotificationStream_WritesEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sub := &fakeSubscriber{
		notifications: []notify.Notification{
			{Title: "Booking created", Description: "Garcia Wedding has been scheduled.", Severity: notify.SeveritySuccess},
			{Title: "Record added", Description: "income of 1500.00 recorded.", Severity: notify.SeveritySuccess},
		},
	}

	r := gin.New()
	r.GET("/stream", AuthRequired(), handleNotificationStream(sub))

	userID := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	req.Header.Set("X-User-ID", userID.String())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, userID, sub.gotUser)

	body := w.Body.String()
	assert.Contains(t, body, `data: {"title":"Booking created"`)
	assert.Contains(t, body, `data: {"title":"Record added"`)
}

func TestNotificationStream_NilSubscriber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stream", handleNotificationStream(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
