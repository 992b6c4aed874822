package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// ValidationReport is the outcome of checking one catalog file.
type ValidationReport struct {
	File   string   `json:"file"`
	Rows   int      `json:"rows"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate parses one catalog file and reports structural and per-row
// problems without loading the full catalog.
func (s *Store) Validate(file string) (*ValidationReport, error) {
	report := &ValidationReport{File: file}
	check := func(rows int, errs []string) {
		report.Rows = rows
		report.Errors = errs
		report.Valid = len(errs) == 0
	}

	switch file {
	case FileBatches:
		records, err := readRecords[BatchRecord](s, file)
		if err != nil {
			return nil, err
		}
		var errs []string
		for i, r := range records {
			if r.ID <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive id", i+1))
			}
			if r.Name == "" {
				errs = append(errs, fmt.Sprintf("row %d: empty batchName", i+1))
			}
			if r.Strength <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive strength", i+1))
			}
		}
		check(len(records), errs)
	case FileFaculty:
		records, err := readRecords[FacultyRecord](s, file)
		if err != nil {
			return nil, err
		}
		var errs []string
		for i, r := range records {
			if r.ID <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive id", i+1))
			}
			if r.Name == "" {
				errs = append(errs, fmt.Sprintf("row %d: empty name", i+1))
			}
		}
		check(len(records), errs)
	case FileRooms:
		records, err := readRecords[RoomRecord](s, file)
		if err != nil {
			return nil, err
		}
		var errs []string
		for i, r := range records {
			if r.ID <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive id", i+1))
			}
			if r.Capacity <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive capacity", i+1))
			}
		}
		check(len(records), errs)
	case FileCourses:
		records, err := readRecords[CourseRecord](s, file)
		if err != nil {
			return nil, err
		}
		var errs []string
		for i, r := range records {
			if r.ID <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive id", i+1))
			}
			if r.Code == "" {
				errs = append(errs, fmt.Sprintf("row %d: empty courseCode", i+1))
			}
			if r.HoursPerWeek <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive hoursPerWeek", i+1))
			}
			if len(splitIDs(r.BatchIDs)) == 0 {
				errs = append(errs, fmt.Sprintf("row %d: no batch ids", i+1))
			}
		}
		check(len(records), errs)
	case FileMinors:
		records, err := readRecords[MinorCourseRecord](s, file)
		if err != nil {
			return nil, err
		}
		var errs []string
		for i, r := range records {
			if r.ID <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive id", i+1))
			}
			if r.HoursPerWeek <= 0 {
				errs = append(errs, fmt.Sprintf("row %d: non-positive hoursPerWeek", i+1))
			}
		}
		check(len(records), errs)
	default:
		return nil, fmt.Errorf("unknown catalog file %q", file)
	}
	return report, nil
}

// ValidateAll validates every known catalog file that exists.
func (s *Store) ValidateAll() ([]*ValidationReport, error) {
	reports := make([]*ValidationReport, 0, len(KnownFiles))
	for _, file := range KnownFiles {
		if _, err := os.Stat(s.path(file)); os.IsNotExist(err) {
			reports = append(reports, &ValidationReport{
				File:   file,
				Errors: []string{"file not found"},
			})
			continue
		}
		report, err := s.Validate(file)
		if err != nil {
			reports = append(reports, &ValidationReport{
				File:   file,
				Errors: []string{err.Error()},
			})
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Upload replaces one catalog file with new content, backing up the current
// version first. The incoming content is validated before it replaces the
// live file; invalid uploads leave the live file untouched.
func (s *Store) Upload(file string, content io.Reader) (*ValidationReport, error) {
	valid := false
	for _, known := range KnownFiles {
		if file == known {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown catalog file %q", file)
	}

	staging := s.path(file + ".staging")
	out, err := os.Create(staging)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if _, err := io.Copy(out, content); err != nil {
		out.Close()
		os.Remove(staging)
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	out.Close()

	report, err := s.validateAt(file, staging)
	if err != nil || !report.Valid {
		os.Remove(staging)
		if err != nil {
			return nil, err
		}
		return report, nil
	}

	if err := s.backup(file); err != nil {
		os.Remove(staging)
		return nil, err
	}
	if err := os.Rename(staging, s.path(file)); err != nil {
		os.Remove(staging)
		return nil, fmt.Errorf("replace %s: %w", file, err)
	}
	s.log.Info("catalog file replaced", zap.String("file", file), zap.Int("rows", report.Rows))
	return report, nil
}

// validateAt validates staged content by temporarily pointing a sibling
// store at the staging path's directory layout.
func (s *Store) validateAt(file, stagedPath string) (*ValidationReport, error) {
	tmpDir, err := os.MkdirTemp(s.dir, "validate-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	data, err := os.ReadFile(stagedPath)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(tmpDir, file), data, 0o644); err != nil {
		return nil, err
	}
	return NewStore(tmpDir, s.log).Validate(file)
}

func (s *Store) backup(file string) error {
	src := s.path(file)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	backupDir := filepath.Join(s.dir, "backups")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s for backup: %w", file, err)
	}
	name := fmt.Sprintf("%s.%s.bak", file, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(filepath.Join(backupDir, name), data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// FileMetadata describes one managed catalog file on disk.
type FileMetadata struct {
	File     string    `json:"file"`
	Exists   bool      `json:"exists"`
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
	Rows     int       `json:"rows,omitempty"`
}

// Metadata reports size, modification time and row count for every known
// catalog file.
func (s *Store) Metadata() ([]FileMetadata, error) {
	out := make([]FileMetadata, 0, len(KnownFiles))
	for _, file := range KnownFiles {
		meta := FileMetadata{File: file}
		info, err := os.Stat(s.path(file))
		if err == nil {
			meta.Exists = true
			meta.Size = info.Size()
			meta.Modified = info.ModTime()
			if rows, err := s.countRows(file); err == nil {
				meta.Rows = rows
			}
		}
		out = append(out, meta)
	}
	return out, nil
}

// Statistics summarizes the loaded catalog volumes.
type Statistics struct {
	Batches          int `json:"batches"`
	Faculty          int `json:"faculty"`
	Rooms            int `json:"rooms"`
	Courses          int `json:"courses"`
	MinorCourses     int `json:"minorCourses"`
	WeeklyLessonLoad int `json:"weeklyLessonLoad"`
}

// Statistics loads the catalog and counts entities plus the total weekly
// lesson volume the courses imply.
func (s *Store) Statistics() (*Statistics, error) {
	cat, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}
	stats := &Statistics{
		Batches:      len(cat.Batches),
		Faculty:      len(cat.Faculty),
		Rooms:        len(cat.Rooms),
		Courses:      len(cat.Courses),
		MinorCourses: len(cat.MinorCourses),
	}
	for _, c := range cat.Courses {
		stats.WeeklyLessonLoad += c.HoursPerWeek * len(c.BatchIDs)
	}
	for _, c := range cat.MinorCourses {
		stats.WeeklyLessonLoad += c.HoursPerWeek
	}
	return stats, nil
}

// Preview returns the header and up to limit data rows of one catalog file,
// untyped.
type Preview struct {
	File   string     `json:"file"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Preview reads raw rows for display; the plain csv reader is used here
// because the rows are shown untyped, exactly as stored.
func (s *Store) Preview(file string, limit int) (*Preview, error) {
	f, err := os.Open(s.path(file))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", file, err)
	}
	preview := &Preview{File: file, Header: header}
	for len(preview.Rows) < limit {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		preview.Rows = append(preview.Rows, row)
	}
	return preview, nil
}

func (s *Store) countRows(file string) (int, error) {
	f, err := os.Open(s.path(file))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows := -1 // discount the header
	for {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		rows++
	}
	if rows < 0 {
		rows = 0
	}
	return rows, nil
}
