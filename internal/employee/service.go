package employee

import (
	"log/slog"

	"github.com/teamtracker/teamtracker-api/internal"
)

// Repository defines the tenant-scoped data access for employees. Every
// method takes the owning user id; implementations must never drop the
// predicate.
type Repository interface {
	Create(emp *Employee) error
	GetAll(userID string) ([]*Employee, error)
	GetByID(id int64, userID string) (*Employee, error)
	Update(id int64, userID string, updates map[string]interface{}) (*Employee, error)
	Delete(id int64, userID string) error
	SearchByName(userID, name string) ([]*Employee, error)
	UsedColors(userID string) ([]string, error)
	EmailExists(userID, email string) (bool, error)
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

func (s *Service) List(userID string) ([]*Employee, error) {
	employees, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to fetch employees", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch employees", err)
	}
	return employees, nil
}

func (s *Service) Get(id int64, userID string) (*Employee, error) {
	emp, err := s.repo.GetByID(id, userID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to fetch employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("Failed to fetch employee", err)
	}
	return emp, nil
}

func (s *Service) Create(userID string, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(userID, dto.Email)
	if err != nil {
		s.logger.Error("employee email lookup failed", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to create employee", err)
	}
	if exists {
		return nil, internal.NewConflictError("Email already exists", internal.ErrCodeDuplicateEmail)
	}

	emp := &Employee{
		Name:    dto.Name,
		Surname: dto.Surname,
		Email:   dto.Email,
		Color:   dto.Color,
		UserID:  userID,
	}

	if err := s.repo.Create(emp); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create employee", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "user_id", userID)
	return emp, nil
}

func (s *Service) Update(id int64, userID string, updates map[string]interface{}) (*Employee, error) {
	patch := internal.FilterPatch(updates, patchableFields...)
	if len(patch) == 0 {
		return nil, internal.ErrEmptyPatch
	}

	emp, err := s.repo.Update(id, userID, patch)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update employee", "error", err, "employee_id", id, "user_id", userID)
		return nil, internal.NewInternalError("Failed to update employee", err)
	}
	return emp, nil
}

func (s *Service) Delete(id int64, userID string) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id, "user_id", userID)
		return internal.NewInternalError("Failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id, "user_id", userID)
	return nil
}

func (s *Service) Search(userID, name string) ([]*Employee, error) {
	employees, err := s.repo.SearchByName(userID, name)
	if err != nil {
		s.logger.Error("employee search failed", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to search employees", err)
	}
	return employees, nil
}

func (s *Service) UsedColors(userID string) ([]string, error) {
	colors, err := s.repo.UsedColors(userID)
	if err != nil {
		s.logger.Error("failed to fetch used colors", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch used colors", err)
	}
	return colors, nil
}
