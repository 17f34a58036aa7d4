package note

import (
	"log/slog"

	"github.com/teamtracker/teamtracker-api/internal"
)

type Repository interface {
	Create(n *Note) error
	GetAll(userID string) ([]*Note, error)
	GetByID(id int64, userID string) (*Note, error)
	Update(id int64, userID string, updates map[string]interface{}) (*Note, error)
	Delete(id int64, userID string) error
}

// TypeValidator checks a note type against the registry. Implemented by the
// registry service.
type TypeValidator interface {
	ValidateNoteType(name string) error
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

func (s *Service) List(userID string) ([]*Note, error) {
	notes, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to fetch notes", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to fetch notes", err)
	}
	return notes, nil
}

func (s *Service) Get(id int64, userID string) (*Note, error) {
	n, err := s.repo.GetByID(id, userID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to fetch note", "error", err, "note_id", id)
		return nil, internal.NewInternalError("Failed to fetch note", err)
	}
	return n, nil
}

func (s *Service) Create(userID string, dto CreateNoteDTO) (*Note, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateNoteType(dto.Type); err != nil {
		return nil, err
	}

	n := &Note{
		Date:       dto.Date,
		Content:    dto.Content,
		EmployeeID: dto.EmployeeID,
		Type:       dto.Type,
		Title:      dto.Title,
		UserID:     userID,
	}

	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create note", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("Failed to create note", err)
	}

	s.logger.Info("note created", "note_id", n.ID, "user_id", userID)
	return n, nil
}

func (s *Service) Update(id int64, userID string, updates map[string]interface{}) (*Note, error) {
	patch := internal.FilterPatch(updates, patchableFields...)
	if len(patch) == 0 {
		return nil, internal.ErrEmptyPatch
	}

	if typeVal, present := patch["type"]; present {
		name, ok := typeVal.(string)
		if !ok {
			return nil, internal.NewValidationError("Invalid note type", internal.ErrCodeInvalidNoteType)
		}
		if err := s.validator.ValidateNoteType(name); err != nil {
			return nil, err
		}
	}

	n, err := s.repo.Update(id, userID, patch)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update note", "error", err, "note_id", id, "user_id", userID)
		return nil, internal.NewInternalError("Failed to update note", err)
	}
	return n, nil
}

func (s *Service) Delete(id int64, userID string) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete note", "error", err, "note_id", id, "user_id", userID)
		return internal.NewInternalError("Failed to delete note", err)
	}

	s.logger.Info("note deleted", "note_id", id, "user_id", userID)
	return nil
}
