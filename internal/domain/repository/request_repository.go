package repository

import "github.com/jhoicas/supply-tracker/internal/domain/entity"

// RequestRepository colección única de solicitudes indexada por ID (cumple procurement.RequestBook).
type RequestRepository interface {
	Get(id string) (*entity.Request, bool)
	Put(request *entity.Request)
	Delete(id string)
	List() []*entity.Request
}

// DraftRepository un borrador abierto por usuario.
type DraftRepository interface {
	Get(owner string) (*entity.RequestDraft, bool)
	Put(draft *entity.RequestDraft)
	Delete(owner string)
}
