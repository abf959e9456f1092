package bedtime

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

var timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// UseCase manages the evening routine plans.
type UseCase struct {
	plans  repository.BedtimeRepository
	logger *zap.Logger
}

func New(plans repository.BedtimeRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{plans: plans, logger: logger}
}

// List returns the owner's plans in ascending time order.
func (uc *UseCase) List(ctx context.Context, ownerID string) ([]domain.BedtimePlan, error) {
	plans, err := uc.plans.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.BedtimePlan{}
	}
	return plans, nil
}

// CreateInput carries the creatable plan fields; Time is required.
type CreateInput struct {
	Title       string
	Description string
	Time        string
}

func (uc *UseCase) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.BedtimePlan, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if in.Time == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "time is required")
	}
	if !timeRe.MatchString(in.Time) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "time must be HH:MM")
	}

	return uc.plans.Create(ctx, &domain.BedtimePlan{
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Time:        in.Time,
	})
}

// Patch is a sparse plan update. A blank patched title keeps the stored one.
type Patch struct {
	Title       *string
	Description *string
	Time        *string
}

func (uc *UseCase) Update(ctx context.Context, ownerID, id string, patch Patch) (*domain.BedtimePlan, error) {
	plan, err := uc.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			plan.Title = title
		}
	}
	if patch.Description != nil {
		plan.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Time != nil {
		if !timeRe.MatchString(*patch.Time) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "time must be HH:MM")
		}
		plan.Time = *patch.Time
	}

	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return uc.plans.Delete(ctx, id)
}

func (uc *UseCase) loadOwned(ctx context.Context, ownerID, id string) (*domain.BedtimePlan, error) {
	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return plan, nil
}
