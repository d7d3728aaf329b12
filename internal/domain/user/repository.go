package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRole(ctx context.Context, role Role) (bool, error)
	ListEmailsByRole(ctx context.Context, roles ...Role) ([]string, error)
}
