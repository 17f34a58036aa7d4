package extraday

import (
	"log/slog"
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
)

type Repository interface {
	Create(ed *ExtraDay) (*ExtraDayWithEmployee, error)
	GetAll(userID string) ([]*ExtraDayWithEmployee, error)
	GetByEmployee(employeeID int64, userID string) ([]*ExtraDay, error)
	Update(id int64, userID string, updates map[string]interface{}) (*ExtraDay, error)
	Delete(id int64, userID string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(userID string) ([]*ExtraDayWithEmployee, error) {
	days, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to fetch extra days", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch extra days", err)
	}
	return days, nil
}

func (s *Service) ListForEmployee(employeeID int64, userID string) ([]*ExtraDay, error) {
	days, err := s.repo.GetByEmployee(employeeID, userID)
	if err != nil {
		s.logger.Error("failed to fetch employee extra days", "error", err,
			"employee_id", employeeID, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch employee extra days", err)
	}
	return days, nil
}

// Create records extra hours. A missing date defaults to today.
func (s *Service) Create(userID string, dto CreateExtraDayDTO) (*ExtraDayWithEmployee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	date := dto.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ed := &ExtraDay{
		EmployeeID: dto.EmployeeID,
		ExtraHours: *dto.ExtraHours,
		Reason:     dto.Reason,
		Date:       date,
		UserID:     userID,
	}

	created, err := s.repo.Create(ed)
	if err != nil {
		s.logger.Error("failed to create extra days", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to create extra days", err)
	}

	s.logger.Info("extra days created", "extra_day_id", created.ID,
		"employee_id", created.EmployeeID, "user_id", userID)
	return created, nil
}

func (s *Service) Update(id int64, userID string, updates map[string]interface{}) (*ExtraDay, error) {
	patch := internal.FilterPatch(updates, patchableFields...)
	if len(patch) == 0 {
		return nil, internal.ErrEmptyPatch
	}

	ed, err := s.repo.Update(id, userID, patch)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update extra days", "error", err, "extra_day_id", id, "user_id", userID)
		return nil, internal.NewInternalError("Failed to update extra days", err)
	}
	return ed, nil
}

func (s *Service) Delete(id int64, userID string) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete extra days", "error", err, "extra_day_id", id, "user_id", userID)
		return internal.NewInternalError("Failed to delete extra days", err)
	}

	s.logger.Info("extra days deleted", "extra_day_id", id, "user_id", userID)
	return nil
}
