package cartstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// MemoryPersister guarda el carrito en memoria.
type MemoryPersister struct {
	mu    sync.Mutex
	lines []Line
}

// NewMemoryPersister crea un persister con estado inicial opcional.
func NewMemoryPersister(initial ...Line) *MemoryPersister {
	return &MemoryPersister{lines: append([]Line(nil), initial...)}
}

func (m *MemoryPersister) Load() ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Line(nil), m.lines...), nil
}

func (m *MemoryPersister) Save(lines []Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append([]Line(nil), lines...)
	return nil
}

// FilePersister guarda el carrito como JSON en disco.
type FilePersister struct {
	path string
}

// NewFilePersister crea el persister sobre path; el archivo puede no existir aún.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (f *FilePersister) Load() ([]Line, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cartstore: leer %s: %w", f.path, err)
	}
	var lines []Line
	if err := json.Unmarshal(b, &lines); err != nil {
		return nil, fmt.Errorf("cartstore: decodificar %s: %w", f.path, err)
	}
	return lines, nil
}

// Save escribe en un temporal y renombra para no dejar archivos a medias.
func (f *FilePersister) Save(lines []Line) error {
	b, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cartstore: codificar: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".cart-*")
	if err != nil {
		return fmt.Errorf("cartstore: crear temporal: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cartstore: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cartstore: cerrar: %w", err)
	}
	return os.Rename(tmp.Name(), f.path)
}
