package notify_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/application/notify"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
)

type recorder struct {
	mu      sync.Mutex
	actions []string
	err     error
	panics  bool
}

func (r *recorder) Record(_ context.Context, action string, _ map[string]any) error {
	if r.panics {
		panic("sink caído")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	return r.err
}

type alertRecorder struct {
	mu     sync.Mutex
	titles []string
}

func (a *alertRecorder) Raise(_ context.Context, title, _, _, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.titles = append(a.titles, title)
	return nil
}

func closeNow(t *testing.T, d *notify.Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
}

func TestDispatcher_EntregaEnOrden(t *testing.T) {
	rec := &recorder{}
	alerts := &alertRecorder{}
	d := notify.NewDispatcher(rec, alerts, notify.Options{QueueSize: 8}, zerolog.Nop())

	now := time.Now()
	d.Publish(
		event.NewActivity(event.ActionStockInCreated, now, nil),
		event.LowStockAlert{SKU: "PAP-001", Title: "Stock bajo"},
		event.NewActivity(event.ActionStockOutCreated, now, nil),
	)
	closeNow(t, d)

	assert.Equal(t, []string{event.ActionStockInCreated, event.ActionStockOutCreated}, rec.actions)
	assert.Equal(t, []string{"Stock bajo"}, alerts.titles)
}

func TestDispatcher_FallasSeRegistranYSeDescartan(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	rec := &recorder{err: errors.New("sin conexión")}
	d := notify.NewDispatcher(rec, nil, notify.Options{}, log)

	d.Publish(event.NewActivity(event.ActionRequestApproved, time.Now(), nil))
	closeNow(t, d)

	assert.Contains(t, buf.String(), "entrega de evento fallida")
	assert.Contains(t, buf.String(), "sin conexión")
}

func TestDispatcher_PanicNoDetieneElWorker(t *testing.T) {
	var buf bytes.Buffer
	rec := &recorder{panics: true}
	d := notify.NewDispatcher(rec, nil, notify.Options{}, zerolog.New(&buf))

	d.Publish(event.NewActivity("a", time.Now(), nil), event.NewActivity("b", time.Now(), nil))
	closeNow(t, d)

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("panic al entregar evento")))
}

func TestDispatcher_PublishDespuesDeCloseSeIgnora(t *testing.T) {
	rec := &recorder{}
	d := notify.NewDispatcher(rec, nil, notify.Options{}, zerolog.Nop())
	closeNow(t, d)

	assert.NotPanics(t, func() { d.Publish(event.NewActivity("tarde", time.Now(), nil)) })
	assert.Empty(t, rec.actions)
	closeNow(t, d)
}

func TestFanout_EntregaATodos(t *testing.T) {
	a := &recorder{err: errors.New("x")}
	b := &recorder{}
	err := notify.Fanout{a, b}.Record(context.Background(), "accion", nil)
	assert.EqualError(t, err, "x")
	assert.Equal(t, []string{"accion"}, b.actions)
}
