package csv_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Nom,Type,Site Web,Téléphone Principal,Ville,Note
Acme Formation,Centre de formation,https://acme-formation.fr,03 22 00 00 00,Amiens,"4,5"
Sans Site,Association,,03 22 11 11 11,Amiens,
Beta Conseil,Cabinet,http://beta-conseil.fr,,Amiens,4
`

func TestReadTasks(t *testing.T) {
	t.Parallel()

	t.Run("keeps only rows with a website", func(t *testing.T) {
		t.Parallel()

		tasks, err := csv.ReadTasks(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		require.Len(t, tasks, 2)

		assert.Equal(t, contactcrawl.SiteTask{
			URL:      "https://acme-formation.fr",
			Name:     "Acme Formation",
			Category: "Centre de formation",
			Phone:    "03 22 00 00 00",
			City:     "Amiens",
			Rating:   "4,5",
		}, tasks[0])
		assert.Equal(t, "http://beta-conseil.fr", tasks[1].URL)
	})

	t.Run("defaults missing name and category", func(t *testing.T) {
		t.Parallel()

		input := "Nom,Type,Site Web\n,,https://example.com\n"
		tasks, err := csv.ReadTasks(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		assert.Equal(t, "Unknown", tasks[0].Name)
		assert.Equal(t, "Unknown", tasks[0].Category)
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		t.Parallel()

		input := "Nom,Type,Site Web,Ville\nAcme,Cabinet,https://acme.fr\n"
		tasks, err := csv.ReadTasks(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Empty(t, tasks[0].City)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		t.Parallel()

		_, err := csv.ReadTasks(strings.NewReader(""))
		require.Error(t, err)
		assert.Equal(t, contactcrawl.EINVALID, contactcrawl.ErrorCode(err))
	})

	t.Run("rejects CSV without website column", func(t *testing.T) {
		t.Parallel()

		_, err := csv.ReadTasks(strings.NewReader("Nom,Ville\nAcme,Amiens\n"))
		require.Error(t, err)
		assert.Equal(t, contactcrawl.EINVALID, contactcrawl.ErrorCode(err))
	})
}

func TestConvertFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sites.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))

	n, err := csv.ConvertFile(csvPath, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tasks, err := csv.ReadTasksJSON(filepath.Join(dir, "sites.json"))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Acme Formation", tasks[0].Name)
}

func TestReadTasksAny(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sites.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))

	fromCSV, err := csv.ReadTasksAny(csvPath)
	require.NoError(t, err)

	_, err = csv.ConvertFile(csvPath, "")
	require.NoError(t, err)

	fromJSON, err := csv.ReadTasksAny(filepath.Join(dir, "sites.json"))
	require.NoError(t, err)

	assert.Equal(t, fromCSV, fromJSON)
}
