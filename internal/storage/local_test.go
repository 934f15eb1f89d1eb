package storage

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveReadExists(t *testing.T) {
	s := NewLocal(filepath.Join(t.TempDir(), "reports"))

	path, err := s.Save("abc-123", []byte("hello"))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`report_abc-123_\d+\.csv$`), path)

	assert.True(t, s.Exists(path))
	data, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestLocalExistsMissing(t *testing.T) {
	s := NewLocal(t.TempDir())
	assert.False(t, s.Exists(""))
	assert.False(t, s.Exists(filepath.Join(s.Dir, "nope.csv")))
}

func TestLocalDefaultDir(t *testing.T) {
	s := NewLocal("")
	assert.Equal(t, filepath.Join("tmp", "reports"), s.Dir)
}
