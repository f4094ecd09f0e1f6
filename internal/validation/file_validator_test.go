package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *FileValidator {
	return NewFileValidator(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestValidateWorkbookFile(t *testing.T) {
	v := newTestValidator()
	dir := t.TempDir()

	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		return path
	}

	t.Run("valid workbook", func(t *testing.T) {
		assert.NoError(t, v.ValidateWorkbookFile(write("schedule.xlsx")))
	})

	t.Run("legacy extension", func(t *testing.T) {
		assert.NoError(t, v.ValidateWorkbookFile(write("schedule.xls")))
	})

	t.Run("wrong extension", func(t *testing.T) {
		assert.Error(t, v.ValidateWorkbookFile(write("schedule.csv")))
	})

	t.Run("excel lock file", func(t *testing.T) {
		assert.Error(t, v.ValidateWorkbookFile(write("~$schedule.xlsx")))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, v.ValidateWorkbookFile(filepath.Join(dir, "absent.xlsx")))
	})

	t.Run("directory", func(t *testing.T) {
		assert.Error(t, v.ValidateWorkbookFile(dir))
	})
}

func TestValidateOutputDirectory(t *testing.T) {
	v := newTestValidator()

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out", "reports")
		require.NoError(t, v.ValidateOutputDirectory(dir))
		assert.DirExists(t, dir)
	})

	t.Run("existing directory", func(t *testing.T) {
		assert.NoError(t, v.ValidateOutputDirectory(t.TempDir()))
	})
}

func TestCheckWorkbookName(t *testing.T) {
	assert.NoError(t, CheckWorkbookName("buques.xlsx"))
	assert.NoError(t, CheckWorkbookName("BUQUES.XLSX"))
	assert.Error(t, CheckWorkbookName("buques.txt"))
	assert.Error(t, CheckWorkbookName("~$buques.xlsx"))
	assert.Error(t, CheckWorkbookName("buques"))
}
