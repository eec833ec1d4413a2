package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLogger_FormatoDeLinea(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileLogger(dir)
	require.NoError(t, err)
	l.now = func() time.Time { return time.Date(2024, 6, 1, 8, 30, 0, 123000000, time.UTC) }

	require.NoError(t, l.Append("bills.json", "New bill created: (ID: inv-1)"))
	require.NoError(t, l.Append("bills.json", "New bill created: (ID: inv-2)"))

	data, err := os.ReadFile(filepath.Join(dir, "bills.json.log"))
	require.NoError(t, err)
	assert.Equal(t,
		"2024-06-01T08:30:00.123Z - New bill created: (ID: inv-1)\n"+
			"2024-06-01T08:30:00.123Z - New bill created: (ID: inv-2)\n",
		string(data))
}

func TestFileLogger_TemaInvalido(t *testing.T) {
	l, err := NewFileLogger(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, l.Append("", "x"))
	assert.Error(t, l.Append("../fuera", "x"))
}

func TestFileLogger_Concurrente(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileLogger(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Append("products.json", "Stock updated"))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(filepath.Join(dir, "products.json.log"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 20)
}
