package registry

import (
	"log/slog"

	"github.com/teamtracker/teamtracker-api/internal"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) NoteTypes() ([]NoteType, error) {
	types, err := s.repo.AllNoteTypes()
	if err != nil {
		s.logger.Error("failed to fetch note types", "error", err)
		return nil, internal.NewInternalError("Failed to fetch note types", err)
	}
	return types, nil
}

func (s *Service) LeaveTypes() ([]LeaveType, error) {
	types, err := s.repo.AllLeaveTypes()
	if err != nil {
		s.logger.Error("failed to fetch leave types", "error", err)
		return nil, internal.NewInternalError("Failed to fetch leave types", err)
	}
	return types, nil
}

func (s *Service) Themes() ([]Theme, error) {
	themes, err := s.repo.AllThemes()
	if err != nil {
		s.logger.Error("failed to fetch themes", "error", err)
		return nil, internal.NewInternalError("Failed to fetch themes", err)
	}
	return themes, nil
}

// ValidateNoteType confirms the name exists in the note type registry. An
// empty name is a no-op; whether the field is required at all is the
// router's decision, not the validator's.
func (s *Service) ValidateNoteType(name string) error {
	if name == "" {
		return nil
	}

	exists, err := s.repo.NoteTypeExists(name)
	if err != nil {
		s.logger.Error("note type lookup failed", "error", err, "type", name)
		return internal.NewInternalError("Failed to validate note type", err)
	}
	if !exists {
		return internal.NewValidationError("Invalid note type", internal.ErrCodeInvalidNoteType)
	}
	return nil
}

// ValidateLeaveType confirms the name exists in the leave type registry.
// Same empty-value semantics as ValidateNoteType.
func (s *Service) ValidateLeaveType(name string) error {
	if name == "" {
		return nil
	}

	exists, err := s.repo.LeaveTypeExists(name)
	if err != nil {
		s.logger.Error("leave type lookup failed", "error", err, "type", name)
		return internal.NewInternalError("Failed to validate leave type", err)
	}
	if !exists {
		return internal.NewValidationError("Invalid leave type", internal.ErrCodeInvalidLeaveType)
	}
	return nil
}
