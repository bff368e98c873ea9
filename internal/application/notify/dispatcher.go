// Package notify entrega los eventos de dominio a los puertos externos después del commit.
// Las fallas de entrega se registran y se descartan: nunca revierten un turno.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/supply-tracker/internal/domain/event"
)

// ActivityNotifier puerto de la bitácora de actividad.
type ActivityNotifier interface {
	Record(ctx context.Context, action string, meta map[string]any) error
}

// AlertSink puerto de alertas visibles para el usuario.
type AlertSink interface {
	Raise(ctx context.Context, title, message, severity, icon string) error
}

// Publisher lo que necesitan los casos de uso para publicar eventos.
type Publisher interface {
	Publish(events ...event.Event)
}

// Options parámetros del despachador.
type Options struct {
	QueueSize int
	Timeout   time.Duration // por entrega
}

// Dispatcher cola con buffer y un worker que entrega en orden de publicación.
type Dispatcher struct {
	activity ActivityNotifier
	alerts   AlertSink
	timeout  time.Duration
	log      zerolog.Logger

	queue chan event.Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

var _ Publisher = (*Dispatcher)(nil)

// NewDispatcher arranca el worker. activity o alerts pueden ser nil (esos eventos se descartan).
func NewDispatcher(activity ActivityNotifier, alerts AlertSink, opts Options, log zerolog.Logger) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	d := &Dispatcher{
		activity: activity,
		alerts:   alerts,
		timeout:  opts.Timeout,
		log:      log.With().Str("component", "notify").Logger(),
		queue:    make(chan event.Event, opts.QueueSize),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish encola los eventos sin bloquear. Con la cola llena el evento se descarta.
func (d *Dispatcher) Publish(events ...event.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	for _, e := range events {
		select {
		case d.queue <- e:
		default:
			d.log.Warn().Str("event", e.EventName()).Msg("cola de notificaciones llena, evento descartado")
		}
	}
}

// Close deja de aceptar eventos y espera a que se entregue lo encolado o a que venza ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for e := range d.queue {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e event.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("event", e.EventName()).Interface("panic", r).Msg("panic al entregar evento")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var err error
	switch ev := e.(type) {
	case event.Activity:
		if d.activity == nil {
			return
		}
		err = d.activity.Record(ctx, ev.Action, ev.Meta)
	case event.LowStockAlert:
		if d.alerts == nil {
			return
		}
		err = d.alerts.Raise(ctx, ev.Title, ev.Message, ev.Severity, ev.Icon)
	default:
		err = fmt.Errorf("evento no soportado: %T", e)
	}
	if err != nil {
		d.log.Error().Err(err).Str("event", e.EventName()).Msg("entrega de evento fallida")
	}
}

// Fanout reparte una actividad a varios notifiers; devuelve el primer error.
type Fanout []ActivityNotifier

// Record implementa ActivityNotifier.
func (f Fanout) Record(ctx context.Context, action string, meta map[string]any) error {
	var first error
	for _, n := range f {
		if err := n.Record(ctx, action, meta); err != nil && first == nil {
			first = err
		}
	}
	return first
}
