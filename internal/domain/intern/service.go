package intern

import "context"

type InternService interface {
	Me(ctx context.Context) (InternResponse, error)
	CreateProfile(ctx context.Context, req CreateProfileRequest) (InternResponse, error)
	GetByID(ctx context.Context, id string) (InternResponse, error)
	List(ctx context.Context, filter InternFilter) (ListInternResponse, error)
}
