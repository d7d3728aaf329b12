package intern

import "context"

type InternRepository interface {
	Create(ctx context.Context, newIntern Intern) (Intern, error)
	GetByID(ctx context.Context, id string) (Intern, error)
	GetByUserID(ctx context.Context, userID string) (Intern, error)
	List(ctx context.Context, filter InternFilter) ([]Intern, int64, error)
	ListActive(ctx context.Context) ([]Intern, error)
	CountActive(ctx context.Context) (int64, error)
}
