package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

type directoryRepo interface {
	ListStudents(ctx context.Context, classID, academicYearID string) ([]models.Student, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListTerms(ctx context.Context) ([]models.Term, error)
	ListAcademicYears(ctx context.Context) ([]models.AcademicYear, error)
}

// DirectoryService serves the lookup lists backing the report filter
// controls.
type DirectoryService struct {
	repo   directoryRepo
	logger *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(repo directoryRepo, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{repo: repo, logger: logger}
}

// Students lists students, optionally scoped by class and academic year.
func (s *DirectoryService) Students(ctx context.Context, classID, academicYearID string) ([]models.Student, error) {
	students, err := s.repo.ListStudents(ctx, classID, academicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Classes lists all classes.
func (s *DirectoryService) Classes(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Terms lists all terms.
func (s *DirectoryService) Terms(ctx context.Context) ([]models.Term, error) {
	terms, err := s.repo.ListTerms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	return terms, nil
}

// AcademicYears lists all academic years.
func (s *DirectoryService) AcademicYears(ctx context.Context) ([]models.AcademicYear, error) {
	years, err := s.repo.ListAcademicYears(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic years")
	}
	return years, nil
}
