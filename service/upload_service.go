package service

import (
	"context"
	"dashboard/repository"
	"dashboard/util"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

type UploadResult struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

type UploadService interface {
	LoadFromCsv(ctx context.Context, fileName string, file io.Reader) (*UploadResult, error)
}

type UploadServiceImpl struct {
	indexRepo *repository.IndexRepository
	returns   ReturnsService
}

func NewUploadService(indexRepo *repository.IndexRepository, returns ReturnsService) UploadService {
	return &UploadServiceImpl{
		indexRepo: indexRepo,
		returns:   returns,
	}
}

func (s *UploadServiceImpl) LoadFromCsv(ctx context.Context, fileName string, file io.Reader) (*UploadResult, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return nil, fmt.Errorf("invalid file type: %s", fileName)
	}

	values, skipped, err := util.ReadIndexValues(file)
	if err != nil {
		return nil, err
	}

	written, err := s.indexRepo.SaveAll(ctx, values)
	if err != nil {
		return nil, err
	}
	if written > 0 {
		s.returns.Invalidate(ctx)
	}

	log.Info().Str("file", fileName).Int("rows", written).Int("skipped", skipped).Msg("CSV upload stored")
	return &UploadResult{Rows: written, Skipped: skipped}, nil
}
