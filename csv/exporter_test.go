package csv_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/fwojciec/grabbr"
	grabbrcsv "github.com/fwojciec/grabbr/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes header and one row per item", func(t *testing.T) {
		t.Parallel()

		items := []grabbr.Item{
			&grabbr.Candidate{Text: "Cell biology", Role: grabbr.RoleHeader},
			&grabbr.QuestionGroup{
				Question: "What carries oxygen?",
				Choices: []grabbr.Choice{
					{Text: "A) Platelets"},
					{Text: "B) Red cells", IsAnswer: true},
				},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, grabbrcsv.Exporter{}.Export(&buf, items))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Type", "Question", "Content/Choices"},
			{"header", "", "Cell biology"},
			{"question", "What carries oxygen?", "A) Platelets | B) Red cells"},
		}, records)
	})

	t.Run("quotes embedded quotes and commas", func(t *testing.T) {
		t.Parallel()

		items := []grabbr.Item{
			&grabbr.Candidate{Text: `He said "hello, world"`, Role: grabbr.RoleText},
		}

		var buf bytes.Buffer
		require.NoError(t, grabbrcsv.Exporter{}.Export(&buf, items))

		assert.Equal(t, "Type,Question,Content/Choices\ntext,,\"He said \"\"hello, world\"\"\"\n", buf.String())
	})

	t.Run("writes only header for no items", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, grabbrcsv.Exporter{}.Export(&buf, nil))

		assert.Equal(t, "Type,Question,Content/Choices\n", buf.String())
	})
}

func TestExporter_Extension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".csv", grabbrcsv.Exporter{}.Extension())
}
