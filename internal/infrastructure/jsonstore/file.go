package jsonstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Un mutex por ruta, compartido por todos los almacenes del proceso.
var (
	locksMu sync.Mutex
	locks   = map[string]*sync.Mutex{}
)

func lockFor(path string) *sync.Mutex {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	locksMu.Lock()
	defer locksMu.Unlock()
	m, ok := locks[key]
	if !ok {
		m = &sync.Mutex{}
		locks[key] = m
	}
	return m
}

// File documento JSON en disco. Las escrituras son atómicas (archivo temporal + rename)
// y un archivo inexistente se lee como vacío.
type File struct {
	path string
	mu   *sync.Mutex
}

// NewFile abre (sin crear) el documento en path.
func NewFile(path string) *File {
	return &File{path: path, mu: lockFor(path)}
}

// Path ruta del documento.
func (f *File) Path() string { return f.path }

// Load lee el contenido completo.
func (f *File) Load() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Store reemplaza el contenido completo.
func (f *File) Store(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(data)
}

// Update lectura-modificación-escritura bajo el lock del archivo. Si fn devuelve error
// el archivo no se toca.
func (f *File) Update(fn func(current []byte) ([]byte, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, err := f.read()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return f.write(next)
}

func (f *File) read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", f.path, err)
	}
	return data, nil
}

func (f *File) write(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op después del rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir %s: %w", f.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", f.path, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("reemplazar %s: %w", f.path, err)
	}
	return nil
}
