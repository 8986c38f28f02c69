package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/reports/domain"
	"github.com/health-wallet/go-wallet-backend/internal/storage/files"
)

// ReportStore is the persistence surface the report service needs.
type ReportStore interface {
	Create(ctx context.Context, ownerID string, rep *domain.Report) error
	GetForUser(ctx context.Context, callerID, reportID string) (*domain.Report, error)
	List(ctx context.Context, ownerID string, f domain.Filter) ([]domain.Report, error)
	Delete(ctx context.Context, callerID, reportID string) (string, error)
}

type ReportService struct {
	repo  ReportStore
	files files.Store
}

func NewReportService(repo ReportStore, fileStore files.Store) *ReportService {
	return &ReportService{repo: repo, files: fileStore}
}

// Upload stores the file bytes, then persists the report row. If the row
// insert fails the stored file is released again.
func (s *ReportService) Upload(ctx context.Context, ownerID string, in domain.CreateInput, file io.Reader) (*domain.Report, error) {
	if in.Title == "" || in.ReportType == "" || in.ReportDate.IsZero() {
		return nil, fmt.Errorf("title, report type, and date are required: %w", apperr.ErrValidation)
	}

	ref, err := s.files.Store(ctx, file, ownerID, in.FileName)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	rep := &domain.Report{
		ID:         uuid.New().String(),
		Title:      in.Title,
		ReportType: in.ReportType,
		StorageRef: ref,
		FileName:   in.FileName,
		ReportDate: in.ReportDate,
		Notes:      in.Notes,
	}

	if err := s.repo.Create(ctx, ownerID, rep); err != nil {
		if delErr := s.files.Delete(ctx, ref); delErr != nil {
			log.Printf("[warn] op=report_upload cleanup ref=%s err=%v", ref, delErr)
		}
		return nil, err
	}

	return rep, nil
}

// Get returns a report the caller owns or has been granted access to.
func (s *ReportService) Get(ctx context.Context, callerID, reportID string) (*domain.Report, error) {
	return s.repo.GetForUser(ctx, callerID, reportID)
}

// Download opens the stored file for a report the caller may read.
func (s *ReportService) Download(ctx context.Context, callerID, reportID string) (io.ReadCloser, *domain.Report, error) {
	rep, err := s.repo.GetForUser(ctx, callerID, reportID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.files.Open(ctx, rep.StorageRef)
	if err != nil {
		return nil, nil, fmt.Errorf("file not found: %w", apperr.ErrNotFound)
	}
	return rc, rep, nil
}

// List returns the caller's own reports with the given filters applied.
func (s *ReportService) List(ctx context.Context, ownerID string, f domain.Filter) ([]domain.Report, error) {
	return s.repo.List(ctx, ownerID, f)
}

// Delete removes an owned report with its grants, then releases the file
// bytes. The file release is best-effort: a missing file is not an error,
// and a failed release is only logged (the sweeper picks it up later).
func (s *ReportService) Delete(ctx context.Context, callerID, reportID string) error {
	ref, err := s.repo.Delete(ctx, callerID, reportID)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, ref); err != nil {
		log.Printf("[warn] op=report_delete release ref=%s err=%v", ref, err)
	}
	return nil
}
