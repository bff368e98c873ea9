package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

var (
	_ repository.RequestRepository = (*requestTable)(nil)
	_ repository.DraftRepository   = (*draftTable)(nil)
)

// ProcurementStore colección de solicitudes y borradores abiertos por usuario.
type ProcurementStore struct {
	mu       sync.Mutex
	requests map[string]*entity.Request
	drafts   map[string]*entity.RequestDraft
}

// NewProcurementStore crea el store vacío.
func NewProcurementStore() *ProcurementStore {
	return &ProcurementStore{
		requests: map[string]*entity.Request{},
		drafts:   map[string]*entity.RequestDraft{},
	}
}

// Run ejecuta fn como un turno serializado; los cambios se confirman solo si fn no falla.
func (s *ProcurementStore) Run(ctx context.Context, fn func(
	requests repository.RequestRepository,
	drafts repository.DraftRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &requestTable{o: newOverlay(s.requests, (*entity.Request).Clone)}
	d := &draftTable{o: newOverlay(s.drafts, (*entity.RequestDraft).Clone)}

	if err := fn(r, d); err != nil {
		return err
	}
	r.o.commit()
	d.o.commit()
	return nil
}

type requestTable struct{ o *overlay[*entity.Request] }

func (t *requestTable) Get(id string) (*entity.Request, bool) { return t.o.get(id) }
func (t *requestTable) Put(r *entity.Request)                 { t.o.put(r.ID, r) }
func (t *requestTable) Delete(id string)                      { t.o.remove(id) }

// List devuelve las solicitudes ordenadas por ID.
func (t *requestTable) List() []*entity.Request {
	keys := t.o.keys()
	out := make([]*entity.Request, 0, len(keys))
	for _, k := range keys {
		if r, ok := t.o.get(k); ok {
			out = append(out, r)
		}
	}
	return out
}

type draftTable struct{ o *overlay[*entity.RequestDraft] }

func (t *draftTable) Get(owner string) (*entity.RequestDraft, bool) { return t.o.get(owner) }
func (t *draftTable) Put(d *entity.RequestDraft)                    { t.o.put(d.Owner, d) }
func (t *draftTable) Delete(owner string)                           { t.o.remove(owner) }
