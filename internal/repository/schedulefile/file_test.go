package schedulefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoad verifies parsing, date resolution and ordering of a valid file.
func TestLoad(t *testing.T) {
	t.Parallel()

	contents := `periods:
  - name: 数学
    start: "08:00:00"
    end: "08:45:00"
  - name: 课间
    start: "08:45:00"
    end: "08:55:00"
  - name: 语文
    start: "08:55:00"
    end: "09:40:00"
`

	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	date := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.Local)

	day, err := Load(path, date)
	require.NoError(t, err)
	require.Len(t, day, 3)

	require.Equal(t, "数学", day[0].Name)
	require.Equal(t, time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local), day[0].Start)
	require.Equal(t, time.Date(2026, time.March, 2, 8, 45, 0, 0, time.Local), day[0].End)

	// The same file resolves against any date.
	tomorrow, err := Load(path, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, day[0].Start.AddDate(0, 0, 1), tomorrow[0].Start)
}

// TestLoadRejectsInvalidSchedules covers overlapping periods and malformed
// clock strings.
func TestLoadRejectsInvalidSchedules(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.Local)

	overlap := `periods:
  - name: 数学
    start: "08:00:00"
    end: "08:45:00"
  - name: 语文
    start: "08:30:00"
    end: "09:15:00"
`

	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlap), 0o600))

	_, err := Load(path, date)
	require.Error(t, err)

	badClock := `periods:
  - name: 数学
    start: "8 o'clock"
    end: "08:45:00"
`

	require.NoError(t, os.WriteFile(path, []byte(badClock), 0o600))

	_, err = Load(path, date)
	require.Error(t, err)
}

// TestLoadMissingFile verifies the ErrNotFound sentinel.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), time.Now())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}
