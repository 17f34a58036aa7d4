package leave

import (
	"log/slog"

	"github.com/teamtracker/teamtracker-api/internal"
)

type Repository interface {
	Create(lv *Leave) error
	GetAll(userID string) ([]*Leave, error)
	GetByID(id int64, userID string) (*Leave, error)
	Update(id int64, userID string, updates map[string]interface{}) (*Leave, error)
	Delete(id int64, userID string) error
}

// TypeValidator checks a leave type against the registry. Implemented by the
// registry service.
type TypeValidator interface {
	ValidateLeaveType(name string) error
}

type Service struct {
	repo      Repository
	validator TypeValidator
	logger    *slog.Logger
}

func NewService(repo Repository, validator TypeValidator, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (s *Service) List(userID string) ([]*Leave, error) {
	leaves, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to fetch leaves", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch leaves", err)
	}
	return leaves, nil
}

func (s *Service) Get(id int64, userID string) (*Leave, error) {
	lv, err := s.repo.GetByID(id, userID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to fetch leave", "error", err, "leave_id", id)
		return nil, internal.NewInternalError("Failed to fetch leave", err)
	}
	return lv, nil
}

// Create validates the type against the registry before touching the store;
// the validator's own message is what the client sees on a miss.
func (s *Service) Create(userID string, dto CreateLeaveDTO) (*Leave, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateLeaveType(dto.Type); err != nil {
		return nil, err
	}

	lv := &Leave{
		EmployeeID: dto.EmployeeID,
		Type:       dto.Type,
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,
		Note:       dto.Note,
		UserID:     userID,
	}

	if err := s.repo.Create(lv); err != nil {
		s.logger.Error("failed to create leave", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to create employee leave", err)
	}

	s.logger.Info("leave created", "leave_id", lv.ID, "employee_id", lv.EmployeeID, "user_id", userID)
	return lv, nil
}

func (s *Service) Update(id int64, userID string, updates map[string]interface{}) (*Leave, error) {
	patch := internal.FilterPatch(updates, patchableFields...)
	if len(patch) == 0 {
		return nil, internal.ErrEmptyPatch
	}

	if typeVal, present := patch["type"]; present {
		name, ok := typeVal.(string)
		if !ok {
			return nil, internal.NewValidationError("Invalid leave type", internal.ErrCodeInvalidLeaveType)
		}
		if err := s.validator.ValidateLeaveType(name); err != nil {
			return nil, err
		}
	}

	lv, err := s.repo.Update(id, userID, patch)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update leave", "error", err, "leave_id", id, "user_id", userID)
		return nil, internal.NewInternalError("Failed to update employee leave", err)
	}
	return lv, nil
}

func (s *Service) Delete(id int64, userID string) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete leave", "error", err, "leave_id", id, "user_id", userID)
		return internal.NewInternalError("Failed to delete employee leave", err)
	}

	s.logger.Info("leave deleted", "leave_id", id, "user_id", userID)
	return nil
}
