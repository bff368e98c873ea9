// Package memory implementa los repositorios del núcleo en memoria del proceso.
// Cada turno (Run) trabaja sobre una capa de cambios que se confirma solo si el
// callback termina sin error; no hay aplicación parcial.
package memory

import "sort"

// overlay capa de escritura sobre un mapa base. Get/Put copian los valores para que
// nadie fuera del store comparta punteros con el estado confirmado.
type overlay[T any] struct {
	base    map[string]T
	writes  map[string]T
	deletes map[string]bool
	clone   func(T) T
}

func newOverlay[T any](base map[string]T, clone func(T) T) *overlay[T] {
	return &overlay[T]{
		base:    base,
		writes:  map[string]T{},
		deletes: map[string]bool{},
		clone:   clone,
	}
}

func (o *overlay[T]) get(key string) (T, bool) {
	var zero T
	if o.deletes[key] {
		return zero, false
	}
	if v, ok := o.writes[key]; ok {
		return o.clone(v), true
	}
	if v, ok := o.base[key]; ok {
		return o.clone(v), true
	}
	return zero, false
}

func (o *overlay[T]) put(key string, v T) {
	o.writes[key] = o.clone(v)
	delete(o.deletes, key)
}

func (o *overlay[T]) remove(key string) {
	delete(o.writes, key)
	o.deletes[key] = true
}

// keys claves visibles ordenadas.
func (o *overlay[T]) keys() []string {
	seen := make(map[string]bool, len(o.base)+len(o.writes))
	out := make([]string, 0, len(o.base)+len(o.writes))
	for k := range o.base {
		if !o.deletes[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for k := range o.writes {
		if !seen[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (o *overlay[T]) commit() {
	for k := range o.deletes {
		delete(o.base, k)
	}
	for k, v := range o.writes {
		o.base[k] = v
	}
}
