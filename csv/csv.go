// Package csv ingests Google-Maps-style CSV exports into site task lists.
package csv

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/contactcrawl"
)

// Column headers of the directory export feeding the crawler.
const (
	colWebsite  = "Site Web"
	colName     = "Nom"
	colCategory = "Type"
	colPhone    = "Téléphone Principal"
	colCity     = "Ville"
	colRating   = "Note"
)

// ReadTasks parses a CSV export and returns one task per row carrying a
// usable http(s) website URL. Rows without one are silently dropped.
func ReadTasks(r io.Reader) ([]contactcrawl.SiteTask, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, contactcrawl.Errorf(contactcrawl.EINVALID, "CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[colWebsite]; !ok {
		return nil, contactcrawl.Errorf(contactcrawl.EINVALID, "CSV is missing the %q column", colWebsite)
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var tasks []contactcrawl.SiteTask
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		website := field(row, colWebsite)
		if !strings.HasPrefix(website, "http") {
			continue
		}

		name := field(row, colName)
		if name == "" {
			name = "Unknown"
		}
		category := field(row, colCategory)
		if category == "" {
			category = "Unknown"
		}

		tasks = append(tasks, contactcrawl.SiteTask{
			URL:      website,
			Name:     name,
			Category: category,
			Phone:    field(row, colPhone),
			City:     field(row, colCity),
			Rating:   field(row, colRating),
		})
	}

	return tasks, nil
}

// ReadTasksFile reads tasks from a CSV file on disk.
func ReadTasksFile(path string) ([]contactcrawl.SiteTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTasks(f)
}

// ConvertFile converts a CSV export to the JSON site-list format and
// returns the number of sites written. When jsonPath is empty the output
// path is the CSV path with its extension swapped for .json.
func ConvertFile(csvPath, jsonPath string) (int, error) {
	tasks, err := ReadTasksFile(csvPath)
	if err != nil {
		return 0, err
	}

	if jsonPath == "" {
		jsonPath = strings.TrimSuffix(csvPath, ".csv") + ".json"
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return 0, err
	}

	return len(tasks), nil
}

// ReadTasksJSON reads tasks from a JSON site-list file produced by
// ConvertFile.
func ReadTasksJSON(path string) ([]contactcrawl.SiteTask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tasks []contactcrawl.SiteTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse site list: %w", err)
	}
	return tasks, nil
}

// ReadTasksAny loads tasks from either a CSV export or a JSON site list,
// chosen by file extension.
func ReadTasksAny(path string) ([]contactcrawl.SiteTask, error) {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return ReadTasksJSON(path)
	}
	return ReadTasksFile(path)
}
