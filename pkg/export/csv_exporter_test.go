package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVRenderWithFooter(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Group", "Total"},
		Rows: []map[string]string{
			{"Group": "Alice", "Total": "150.00"},
			{"Group": "Bob", "Total": "75.00"},
		},
		Footer: map[string]string{"Group": "TOTAL", "Total": "225.00"},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	require.Equal(t, "Group,Total\nAlice,150.00\nBob,75.00\nTOTAL,225.00\n", string(out))
}

func TestCSVRenderMissingCellsStayEmpty(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Group", "Total", "Paid"},
		Rows: []map[string]string{
			{"Group": "Alice", "Total": "150.00"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	require.Equal(t, "Group,Total,Paid\nAlice,150.00,\n", string(out))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}
