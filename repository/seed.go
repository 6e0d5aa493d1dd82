package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"golang.org/x/crypto/bcrypt"
)

type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	// DemoData 额外写入演示用的考试局和科目
	DemoData bool
}

// Seed 保证管理员账号存在，返回管理员记录。已存在时不会重复写入演示数据。
func Seed(ctx context.Context, store Storage, opts SeedOptions) (*models.User, error) {
	admin, err := store.GetUserByUsername(ctx, opts.AdminUsername)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin, err = store.CreateUser(ctx, models.InsertUser{Username: opts.AdminUsername, PasswordHash: string(hash)})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	if opts.DemoData {
		if err := seedDemo(ctx, store); err != nil {
			return nil, err
		}
	}
	return admin, nil
}

func seedDemo(ctx context.Context, store Storage) error {
	demo := []struct {
		board   models.InsertBoard
		subject models.InsertSubject
	}{
		{
			board:   models.InsertBoard{Name: "CBSE Class 12", Description: strPtr("Central Board of Secondary Education"), Type: models.BoardTypeSecondary},
			subject: models.InsertSubject{Name: "Mathematics", Description: strPtr("Advanced mathematics covering calculus, algebra, and trigonometry")},
		},
		{
			board:   models.InsertBoard{Name: "JEE Main", Description: strPtr("Joint Entrance Examination Main"), Type: models.BoardTypeCompetitive},
			subject: models.InsertSubject{Name: "Physics", Description: strPtr("Fundamental physics concepts including mechanics, thermodynamics, and optics")},
		},
		{
			board:   models.InsertBoard{Name: "NEET", Description: strPtr("National Eligibility cum Entrance Test"), Type: models.BoardTypeCompetitive},
			subject: models.InsertSubject{Name: "Biology", Description: strPtr("Comprehensive biology covering botany, zoology, and human physiology")},
		},
	}

	boardIDs := make([]int64, 0, len(demo))
	for _, d := range demo {
		b, err := store.CreateBoard(ctx, d.board)
		if err != nil {
			return fmt.Errorf("failed to seed board %q: %w", d.board.Name, err)
		}
		boardIDs = append(boardIDs, b.ID)
	}
	for i, d := range demo {
		in := d.subject
		in.BoardID = boardIDs[i]
		if _, err := store.CreateSubject(ctx, in); err != nil {
			return fmt.Errorf("failed to seed subject %q: %w", in.Name, err)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
