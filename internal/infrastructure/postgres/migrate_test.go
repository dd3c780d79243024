package postgres

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDriver keeps applied scripts in memory.
type recordingDriver struct {
	scripts []string
	version int
	dirty   bool
}

func newRecordingDriver() *recordingDriver {
	return &recordingDriver{version: database.NilVersion}
}

func (d *recordingDriver) Open(string) (database.Driver, error) { return d, nil }
func (d *recordingDriver) Close() error                         { return nil }
func (d *recordingDriver) Lock() error                          { return nil }
func (d *recordingDriver) Unlock() error                        { return nil }
func (d *recordingDriver) Drop() error                          { return nil }

func (d *recordingDriver) Run(migration io.Reader) error {
	body, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	d.scripts = append(d.scripts, string(body))
	return nil
}

func (d *recordingDriver) SetVersion(version int, dirty bool) error {
	d.version, d.dirty = version, dirty
	return nil
}

func (d *recordingDriver) Version() (int, bool, error) {
	return d.version, d.dirty, nil
}

func TestNewMigratorAppliesEmbeddedMigrations(t *testing.T) {
	driver := newRecordingDriver()

	m, err := newMigrator("", "taskmaster", driver)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Up())

	require.Len(t, driver.scripts, 1)
	assert.Contains(t, driver.scripts[0], "CREATE TABLE")
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.False(t, dirty)
}

func TestNewMigratorReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_users.up.sql"), []byte("SELECT 1;"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_users.down.sql"), []byte("SELECT 2;"), 0o600))
	driver := newRecordingDriver()

	m, err := newMigrator(dir, "taskmaster", driver)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Up())
	require.NoError(t, m.Down())

	assert.Equal(t, []string{"SELECT 1;", "SELECT 2;"}, driver.scripts)
	assert.Equal(t, database.NilVersion, driver.version)
}
