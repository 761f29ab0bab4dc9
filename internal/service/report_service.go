package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
	"github.com/peerlearn/tutoring-api/pkg/export"
)

// ReportFormat selects the rendered output type.
type ReportFormat string

const (
	FormatCSV ReportFormat = "csv"
	FormatPDF ReportFormat = "pdf"
)

type reportDataSource interface {
	ListTutors(ctx context.Context) ([]models.Tutor, error)
}

type pastJobLister interface {
	ListPast(ctx context.Context, limit int) ([]models.PastJob, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReportFile is a rendered report ready for download.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService renders admin reports over tutors and verified sessions.
type ReportService struct {
	profiles reportDataSource
	past     pastJobLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(profiles reportDataSource, past pastJobLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{profiles: profiles, past: past, csv: csv, pdf: pdf, logger: logger}
}

// VolunteerHours renders the per-tutor volunteer hours report.
func (s *ReportService) VolunteerHours(ctx context.Context, format ReportFormat) (*ReportFile, error) {
	tutors, err := s.profiles.ListTutors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutors")
	}

	data := export.Dataset{
		Headers: []string{"Tutor", "Email", "Status", "Volunteer Hours"},
	}
	for _, tutor := range tutors {
		data.Rows = append(data.Rows, map[string]string{
			"Tutor":           tutor.FullName(),
			"Email":           tutor.Email,
			"Status":          string(tutor.Status),
			"Volunteer Hours": fmt.Sprintf("%.1f", tutor.VolunteerHours),
		})
	}
	return s.render(data, "volunteer_hours", "Volunteer Hours", format)
}

// VerifiedSessions renders the verified session archive report.
func (s *ReportService) VerifiedSessions(ctx context.Context, format ReportFormat) (*ReportFile, error) {
	past, err := s.past.ListPast(ctx, 500)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load past jobs")
	}

	data := export.Dataset{
		Headers: []string{"Tutor", "Tutee", "Subject", "Verified At", "Hours"},
	}
	for _, job := range past {
		data.Rows = append(data.Rows, map[string]string{
			"Tutor":       job.TutorName,
			"Tutee":       job.TuteeName,
			"Subject":     fmt.Sprintf("%s (%s, Grade %s)", job.Name, job.Type, job.Grade),
			"Verified At": job.VerifiedAt.Format("2006-01-02"),
			"Hours":       fmt.Sprintf("%.1f", job.AwardedVolunteerHours),
		})
	}
	return s.render(data, "verified_sessions", "Verified Sessions", format)
}

func (s *ReportService) render(data export.Dataset, name, title string, format ReportFormat) (*ReportFile, error) {
	switch ReportFormat(strings.ToLower(string(format))) {
	case FormatCSV, "":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ReportFile{Filename: name + ".csv", ContentType: "text/csv", Data: payload}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ReportFile{Filename: name + ".pdf", ContentType: "application/pdf", Data: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
