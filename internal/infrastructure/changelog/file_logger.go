package changelog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

var _ repository.ChangeLogger = (*FileLogger)(nil)

// FileLogger registro de cambios legible: una línea "<ISO-8601 UTC> - <mensaje>" por evento
// en <dir>/<topic>.log. Lo consume la sincronización con la base central.
type FileLogger struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// NewFileLogger crea el directorio si no existe.
func NewFileLogger(dir string) (*FileLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de logs: %w", err)
	}
	return &FileLogger{dir: dir, now: time.Now}, nil
}

// Append agrega una línea al log del tema. No reintenta.
func (l *FileLogger) Append(topic, message string) error {
	if topic == "" || strings.ContainsAny(topic, `/\`) || topic == "." || topic == ".." {
		return errors.New("changelog: tema inválido")
	}
	line := fmt.Sprintf("%s - %s\n", l.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"), message)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(filepath.Join(l.dir, topic+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("changelog: abrir %s: %w", topic, err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("changelog: escribir %s: %w", topic, err)
	}
	return f.Close()
}
