package comment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

// UseCase manages the comment subdocuments on kanban cards. Every operation
// is ownership-checked against the parent card and returns the card's full
// comment list.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tasks: tasks, logger: logger}
}

func (uc *UseCase) Add(ctx context.Context, ownerID, taskID, text string) ([]domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Comment text is required")
	}

	task, err := uc.loadOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	task.Comments = append(task.Comments, domain.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now(),
	})
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task.Comments, nil
}

func (uc *UseCase) Edit(ctx context.Context, ownerID, taskID, commentID, text string) ([]domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Comment text is required")
	}

	task, err := uc.loadOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range task.Comments {
		if task.Comments[i].ID == commentID {
			task.Comments[i].Text = text
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrCommentNotFound
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task.Comments, nil
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, taskID, commentID string) ([]domain.Comment, error) {
	task, err := uc.loadOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	kept := task.Comments[:0]
	found := false
	for _, c := range task.Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return nil, domain.ErrCommentNotFound
	}
	task.Comments = kept

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task.Comments, nil
}

func (uc *UseCase) loadOwned(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid task id")
	}
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return task, nil
}
