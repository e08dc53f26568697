package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHash(t *testing.T) {
	a := CalculateHash([]string{"2024", "1", "123456", "411", "Eventos"})
	b := CalculateHash([]string{"2024", "1", "123456", "411", "Eventos"})
	c := CalculateHash([]string{"2024", "1", "123456", "411", "Provisões"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCalculateHash_FieldBoundaries(t *testing.T) {
	assert.NotEqual(t,
		CalculateHash([]string{"a;b", "c"}),
		CalculateHash([]string{"a", "b;c"}),
	)
}

func TestGetFileChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.csv")
	assert.NoError(t, os.WriteFile(path, []byte("conteudo"), 0644))

	sum1, err := GetFileChecksum(path)
	assert.NoError(t, err)
	sum2, err := GetFileChecksum(path)
	assert.NoError(t, err)
	assert.Equal(t, sum1, sum2)

	_, err = GetFileChecksum(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
