// Package cartstore mantiene el estado del carrito del lado cliente, independiente de
// cualquier framework de UI: un reducer puro más un Store con persistencia inyectada
// (equivalente a localStorage en el navegador).
package cartstore

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Line línea del carrito con el precio vigente al momento de agregarla.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// ActionType tipos de acción aceptados por Reduce.
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionRemove ActionType = "remove"
	ActionUpdate ActionType = "update"
	ActionClear  ActionType = "clear"
)

// Action describe un cambio sobre el carrito.
type Action struct {
	Type      ActionType
	Line      Line   // add
	ProductID string // remove, update
	Quantity  int    // update; <= 0 elimina la línea
}

// Reduce aplica la acción y devuelve un estado nuevo; no modifica state.
func Reduce(state []Line, a Action) []Line {
	next := make([]Line, 0, len(state)+1)
	switch a.Type {
	case ActionAdd:
		if a.Line.ProductID == "" || a.Line.Quantity <= 0 {
			return append(next, state...)
		}
		merged := false
		for _, l := range state {
			if l.ProductID == a.Line.ProductID {
				l.Quantity += a.Line.Quantity
				l.Name = a.Line.Name
				l.Price = a.Line.Price
				merged = true
			}
			next = append(next, l)
		}
		if !merged {
			next = append(next, a.Line)
		}
	case ActionRemove:
		for _, l := range state {
			if l.ProductID != a.ProductID {
				next = append(next, l)
			}
		}
	case ActionUpdate:
		for _, l := range state {
			if l.ProductID == a.ProductID {
				if a.Quantity <= 0 {
					continue
				}
				l.Quantity = a.Quantity
			}
			next = append(next, l)
		}
	case ActionClear:
	default:
		next = append(next, state...)
	}
	return next
}

// Normalize fusiona líneas repetidas y descarta cantidades no positivas.
func Normalize(lines []Line) []Line {
	state := []Line{}
	for _, l := range lines {
		state = Reduce(state, Action{Type: ActionAdd, Line: l})
	}
	return state
}

// Total suma precio × cantidad de todas las líneas.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Count número total de unidades.
func Count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Persister guarda y recupera el estado del carrito.
type Persister interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// Store carrito con estado en memoria persistido tras cada acción.
type Store struct {
	mu    sync.Mutex
	lines []Line
	p     Persister
}

// New crea el store cargando el estado previo desde p.
func New(p Persister) (*Store, error) {
	lines, err := p.Load()
	if err != nil {
		return nil, err
	}
	return &Store{lines: Normalize(lines), p: p}, nil
}

// Dispatch aplica la acción y persiste el resultado. Si Save falla el estado no cambia.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Reduce(s.lines, a)
	if err := s.p.Save(next); err != nil {
		return err
	}
	s.lines = next
	return nil
}

// Add agrega una línea o acumula su cantidad.
func (s *Store) Add(l Line) error { return s.Dispatch(Action{Type: ActionAdd, Line: l}) }

// Remove elimina el producto del carrito.
func (s *Store) Remove(productID string) error {
	return s.Dispatch(Action{Type: ActionRemove, ProductID: productID})
}

// Update fija la cantidad; quantity <= 0 elimina la línea.
func (s *Store) Update(productID string, quantity int) error {
	return s.Dispatch(Action{Type: ActionUpdate, ProductID: productID, Quantity: quantity})
}

// Clear vacía el carrito.
func (s *Store) Clear() error { return s.Dispatch(Action{Type: ActionClear}) }

// Lines copia del estado actual.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total derivado del estado actual.
func (s *Store) Total() decimal.Decimal { return Total(s.Lines()) }

// Count unidades en el carrito.
func (s *Store) Count() int { return Count(s.Lines()) }
