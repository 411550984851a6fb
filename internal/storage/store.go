package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/halokit/internal/kernel"
)

const (
	metadataFile = "metadata.json"
	tableFile    = "table.csv"
)

// ErrEmptyTable is returned when a table has no columns.
var ErrEmptyTable = errors.New("storage: table has no columns")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Table is a column-major block of results, such as masses and the mass
// function evaluated at them.
type Table struct {
	Columns []string
	Data    [][]float64
}

// Rows is the length of the shortest column.
func (t *Table) Rows() int {
	if len(t.Data) == 0 {
		return 0
	}
	n := len(t.Data[0])
	for _, col := range t.Data[1:] {
		n = min(n, len(col))
	}
	return n
}

type RunMetadata struct {
	ID           string        `json:"id"`
	Command      string        `json:"command"`
	Timestamp    time.Time     `json:"timestamp"`
	Cosmology    kernel.Params `json:"cosmology"`
	MassFunction string        `json:"mass_function,omitempty"`
	HaloBias     string        `json:"halo_bias,omitempty"`
	MassDef      string        `json:"mass_def,omitempty"`
	ScaleFactor  float64       `json:"scale_factor,omitempty"`
	Columns      []string      `json:"columns"`
	Rows         int           `json:"rows"`
}

// Save writes meta and table under a new run directory and returns the
// run ID. meta.ID, Timestamp, Columns and Rows are filled in.
func (s *Store) Save(meta RunMetadata, table *Table) (string, error) {
	if len(table.Columns) == 0 || len(table.Columns) != len(table.Data) {
		return "", ErrEmptyTable
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Command, now.UnixNano())
	meta.Timestamp = now
	meta.Columns = table.Columns
	meta.Rows = table.Rows()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, tableFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, table); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes a header row followed by one row per table row.
func WriteCSV(out io.Writer, table *Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	row := make([]string, len(table.Columns))
	for i := 0; i < table.Rows(); i++ {
		for j, col := range table.Data {
			row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTable(runID string) (*Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, tableFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	table := &Table{Columns: records[0], Data: make([][]float64, len(records[0]))}
	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %s: %w", runID, i+1, table.Columns[j], err)
			}
			table.Data[j] = append(table.Data[j], v)
		}
	}
	return table, nil
}

type ExportData struct {
	RunMetadata
	Data map[string][]float64 `json:"data"`
}

// ExportJSON writes meta and the table columns as one JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, table *Table) error {
	if len(table.Columns) != len(table.Data) {
		return ErrEmptyTable
	}
	data := ExportData{RunMetadata: meta, Data: make(map[string][]float64, len(table.Columns))}
	data.Columns = table.Columns
	data.Rows = table.Rows()
	for i, name := range table.Columns {
		data.Data[name] = table.Data[i][:data.Rows]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
