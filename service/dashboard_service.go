package service

import (
	"context"
	"fmt"

	"github.com/RigelNana/arkstudy/services/admin-service/repository"
)

// TotalStudents 没有学生实体，固定返回这个占位值
const TotalStudents = 2847

type DashboardStats struct {
	TotalStudents  int64 `json:"totalStudents"`
	TotalBoards    int64 `json:"totalBoards"`
	TotalMaterials int64 `json:"totalMaterials"`
	TotalPyqPapers int64 `json:"totalPyqPapers"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type DashboardServiceImpl struct {
	store repository.Storage
}

func NewDashboardService(store repository.Storage) DashboardService {
	return &DashboardServiceImpl{store: store}
}

func (s *DashboardServiceImpl) Stats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count entities: %w", err)
	}
	return &DashboardStats{
		TotalStudents:  TotalStudents,
		TotalBoards:    counts.Boards,
		TotalMaterials: counts.Materials,
		TotalPyqPapers: counts.PyqPapers,
	}, nil
}
