package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"ID", "Course", "Attendance %"},
		Rows: [][]string{
			{"1", "Web Application Development", "85.0"},
			{"2", "Data Communications", "52.5"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Course,Attendance %", lines[0])
	assert.Equal(t, "1,Web Application Development,85.0", lines[1])
}

func TestCSVExporterShortRowPadsToHeaderCount(t *testing.T) {
	data := Dataset{
		Headers: []string{"A", "B", "C"},
		Rows:    [][]string{{"only"}},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "only,,")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course", "Present"},
		Rows:    [][]string{{"Networking", "34"}},
	}

	out, err := NewPDFExporter().Render(data, "lectures_admin_2025-03-01")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
