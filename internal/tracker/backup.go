package tracker

import (
	"context"
	"path/filepath"

	"github.com/sandeepkv93/studyboard/internal/backup"
	"github.com/sandeepkv93/studyboard/internal/model"
	"github.com/sandeepkv93/studyboard/internal/store"
)

func (s *Service) Export() ([]byte, error) {
	return backup.Export(s.store.State())
}

// ExportFile writes a dated backup into dir and returns its path.
func (s *Service) ExportFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, backup.FileName(s.now()))
	if err := backup.ExportFile(path, s.store.State()); err != nil {
		return "", err
	}
	s.log.Infow("backup exported", "path", path)
	return path, nil
}

// Import merges a backup document. A malformed document returns a
// *backup.FormatError and leaves state untouched.
func (s *Service) Import(ctx context.Context, data []byte) (model.StatePatch, error) {
	patch, err := backup.Import(data)
	if err != nil {
		s.log.Warnw("backup rejected", "error", err)
		return model.StatePatch{}, err
	}
	return patch, s.applyImport(ctx, patch)
}

func (s *Service) ImportFile(ctx context.Context, path string) (model.StatePatch, error) {
	patch, err := backup.ImportFile(path)
	if err != nil {
		s.log.Warnw("backup rejected", "path", path, "error", err)
		return model.StatePatch{}, err
	}
	if err := s.applyImport(ctx, patch); err != nil {
		return model.StatePatch{}, err
	}
	s.log.Infow("backup imported", "path", path)
	return patch, nil
}

func (s *Service) applyImport(ctx context.Context, patch model.StatePatch) error {
	return s.store.Dispatch(ctx, store.ImportData{Payload: patch})
}
