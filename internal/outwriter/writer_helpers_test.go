package outwriter

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{"precision 1", 1, 74.25, "74.2"},
		{"precision 2", 2, 74.256, "74.26"},
		{"precision 1 whole number", 1, 80, "80.0"},
		{"zero", 2, 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"count": 3}))
	assert.Equal(t, "{\n  \"count\": 3\n}\n", buf.String())
}

func TestFormatPosition(t *testing.T) {
	assert.Equal(t, "3/40", formatPosition(3, 40))
	assert.Equal(t, "1/1", formatPosition(1, 1))
	assert.Equal(t, "-", formatPosition(0, 40), "No Data students hold no position")
}

func TestWriteWithFile(t *testing.T) {
	t.Run("writes file and reports path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := w.Write([]byte("hello"))
			return err
		}, "Wrote text")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})
}
