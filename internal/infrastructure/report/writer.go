package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"NewsAnalytics/internal/analysis"
	"NewsAnalytics/internal/ports"
	"NewsAnalytics/internal/validation"
)

const timestampLayout = "20060102_150405"

// FileReportSink writes run artifacts into a report directory, one file
// per artifact, named by write time and run ID.
type FileReportSink struct {
	dir string
	now func() time.Time
}

var _ ports.ReportSink = (*FileReportSink)(nil)

// NewFileReportSink points the sink at a directory, created on demand.
func NewFileReportSink(dir string) *FileReportSink {
	return &FileReportSink{dir: dir, now: time.Now}
}

// NewFileReportSinkAt pins the clock used in filenames.
func NewFileReportSinkAt(dir string, now func() time.Time) *FileReportSink {
	if now == nil {
		now = time.Now
	}
	return &FileReportSink{dir: dir, now: now}
}

// WriteCleaningReport persists the cleaning log as a text report.
func (s *FileReportSink) WriteCleaningReport(runID string, log []string) (string, error) {
	path, err := s.path("cleaning_report", runID, "txt")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("DATA CLEANING REPORT\n")
	sb.WriteString("run: " + runID + "\n")
	sb.WriteString("written: " + s.now().UTC().Format(time.RFC3339) + "\n\n")
	for _, entry := range log {
		sb.WriteString("  - " + entry + "\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write cleaning report: %w", err)
	}
	return path, nil
}

// WriteValidationReport persists the validation report as JSON.
func (s *FileReportSink) WriteValidationReport(runID string, report validation.Report) (string, error) {
	return s.writeJSON("validation_report", runID, report)
}

// WriteAnalysisReport persists analysis results as JSON.
func (s *FileReportSink) WriteAnalysisReport(runID string, results analysis.Results) (string, error) {
	return s.writeJSON("analysis_report", runID, results)
}

func (s *FileReportSink) writeJSON(kind, runID string, payload any) (string, error) {
	path, err := s.path(kind, runID, "json")
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", kind, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", kind, err)
	}
	return path, nil
}

func (s *FileReportSink) path(kind, runID, ext string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s.%s", kind, s.now().UTC().Format(timestampLayout), runID, ext)
	return filepath.Join(s.dir, name), nil
}
