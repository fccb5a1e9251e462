// Package loader discovers and parses catalog record files. Data loading is
// a collaborator of the chart core, not part of it: the pipeline only ever
// sees the flat []model.Record this package produces.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"

	"github.com/lumipallolabs/corpusmap/internal/logging"
	"github.com/lumipallolabs/corpusmap/internal/model"
)

// DiscoverFiles walks the data directory and returns every record file,
// sorted by path so record order (and therefore hierarchy construction) is
// deterministic. Files are accepted by extension (.csv, .json) or, for
// unknown extensions, by content sniffing.
func DiscoverFiles(dir string) ([]string, error) {
	var mu sync.Mutex
	var files []string

	conf := &fastwalk.Config{
		Follow: false,
	}

	err := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Loader.Printf("skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !isRecordFile(path) {
			return nil
		}
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// isRecordFile accepts .csv/.json by extension and sniffs anything else
func isRecordFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".json":
		return true
	case ".yaml", ".yml":
		// Taxonomy/config files live alongside the data; never records
		return false
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return mtype.Is("text/csv") || mtype.Is("application/json")
}

// LoadDir loads every record file under dir, concatenated in path order
func LoadDir(dir string) ([]model.Record, error) {
	files, err := DiscoverFiles(dir)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for _, f := range files {
		recs, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	logging.Loader.Printf("loaded %d records from %d files under %s",
		len(records), len(files), dir)
	return records, nil
}

// LoadFile parses one record file, dispatching on extension with a content
// sniff fallback
func LoadFile(path string) ([]model.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect %s: %w", path, err)
	}
	switch {
	case mtype.Is("text/csv"):
		return loadCSV(path)
	case mtype.Is("application/json"):
		return loadJSON(path)
	}
	return nil, fmt.Errorf("load %s: unsupported content type %s", path, mtype.String())
}

// loadCSV reads records from a CSV file with a header row. Recognized
// columns (case-insensitive): category, subcategory, value (or
// metricvalue). Extra columns are ignored.
func loadCSV(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	catCol, subCol, valCol := -1, -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "category":
			catCol = i
		case "subcategory":
			subCol = i
		case "value", "metricvalue":
			valCol = i
		}
	}
	if subCol < 0 || valCol < 0 {
		return nil, fmt.Errorf("parse %s: missing subcategory/value columns", path)
	}

	records := make([]model.Record, 0, len(rows)-1)
	for lineNo, row := range rows[1:] {
		if valCol >= len(row) || subCol >= len(row) {
			continue
		}
		value, err := strconv.ParseInt(strings.TrimSpace(row[valCol]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s line %d: bad value %q", path, lineNo+2, row[valCol])
		}
		rec := model.Record{
			Subcategory: strings.TrimSpace(row[subCol]),
			MetricValue: value,
		}
		if catCol >= 0 && catCol < len(row) {
			rec.Category = strings.TrimSpace(row[catCol])
		}
		records = append(records, rec)
	}
	return records, nil
}

// loadJSON reads records from a JSON array file
func loadJSON(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
