package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/pkg/export"
	apperrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportScope narrows an export to one batch, faculty member or room. The
// zero value exports the whole timetable.
type ExportScope struct {
	BatchID   *int64
	FacultyID *int64
	RoomID    *int64
}

// ExportResult carries the rendered payload plus where it was archived.
type ExportResult struct {
	Filename     string
	RelativePath string
	ContentType  string
	Data         []byte
}

type lessonSource interface {
	AssignedLessons() ([]*domain.Lesson, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	ResultTTL time.Duration
}

// ExportService renders the latest timetable to CSV or PDF and archives a
// copy under the exports directory.
type ExportService struct {
	lessons lessonSource
	storage fileStorage
	log     *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(lessons lessonSource, storage fileStorage, cfg ExportConfig, log *zap.Logger) *ExportService {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{lessons: lessons, storage: storage, log: log, cfg: cfg}
}

// Export renders the latest timetable in the requested format and scope.
func (s *ExportService) Export(format ExportFormat, scope ExportScope) (*ExportResult, error) {
	all, err := s.lessons.AssignedLessons()
	if err != nil {
		return nil, err
	}
	lessons, label := applyScope(all, scope)
	dataset := export.TimetableDataset(lessons)

	var payload []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		payload, err = export.RenderCSV(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = export.RenderPDF(dataset, exportTitle(label))
		contentType = "application/pdf"
	default:
		return nil, apperrors.Clone(apperrors.ErrValidation,
			fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code,
			apperrors.ErrInternal.Status, "render export")
	}

	filename := buildExportFilename(label, format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code,
			apperrors.ErrInternal.Status, "store export")
	}
	s.log.Info("timetable exported",
		zap.String("file", relPath),
		zap.String("format", string(format)),
		zap.Int("lessons", len(lessons)))

	return &ExportResult{
		Filename:     filename,
		RelativePath: relPath,
		ContentType:  contentType,
		Data:         payload,
	}, nil
}

// Open returns a handle to an archived export.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes an archived export.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes archived exports older than ttl (defaults to the
// configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func applyScope(lessons []*domain.Lesson, scope ExportScope) ([]*domain.Lesson, string) {
	keep := func(*domain.Lesson) bool { return true }
	label := "timetable"
	switch {
	case scope.BatchID != nil:
		id := *scope.BatchID
		keep = func(l *domain.Lesson) bool { return l.Batch != nil && l.Batch.ID == id }
		label = fmt.Sprintf("timetable_batch_%d", id)
	case scope.FacultyID != nil:
		id := *scope.FacultyID
		keep = func(l *domain.Lesson) bool { return l.Faculty != nil && l.Faculty.ID == id }
		label = fmt.Sprintf("timetable_faculty_%d", id)
	case scope.RoomID != nil:
		id := *scope.RoomID
		keep = func(l *domain.Lesson) bool { return l.Room != nil && l.Room.ID == id }
		label = fmt.Sprintf("timetable_room_%d", id)
	}
	out := make([]*domain.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out, label
}

func buildExportFilename(label string, format ExportFormat) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", label, timestamp, format)
}

func exportTitle(label string) string {
	title := strings.ReplaceAll(label, "_", " ")
	return strings.ToUpper(title[:1]) + title[1:]
}
