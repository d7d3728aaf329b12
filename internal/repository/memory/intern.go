package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
)

type internRepository struct{ s *Store }

func (s *Store) Interns() intern.InternRepository { return internRepository{s} }

func (r internRepository) Create(_ context.Context, newIntern intern.Intern) (intern.Intern, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, in := range r.s.interns {
		if in.UserID == newIntern.UserID {
			return intern.Intern{}, intern.ErrProfileAlreadyExists
		}
	}
	newIntern.ID = newID()
	newIntern.CreatedAt = r.s.now()
	newIntern.UpdatedAt = newIntern.CreatedAt
	if u, ok := r.s.users[newIntern.UserID]; ok {
		newIntern.Email = u.Email
	}
	r.s.interns[newIntern.ID] = newIntern
	return newIntern, nil
}

func (r internRepository) GetByID(_ context.Context, id string) (intern.Intern, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.interns[id]
	if !ok {
		return intern.Intern{}, intern.ErrInternNotFound
	}
	return in, nil
}

func (r internRepository) GetByUserID(_ context.Context, userID string) (intern.Intern, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, in := range r.s.interns {
		if in.UserID == userID {
			return in, nil
		}
	}
	return intern.Intern{}, intern.ErrInternNotFound
}

func (r internRepository) sorted(keep func(intern.Intern) bool) []intern.Intern {
	var out []intern.Intern
	for _, in := range r.s.interns {
		if keep(in) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func (r internRepository) List(_ context.Context, filter intern.InternFilter) ([]intern.Intern, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted(func(in intern.Intern) bool {
		if filter.IsActive != nil && in.IsActive != *filter.IsActive {
			return false
		}
		if filter.Search != nil && *filter.Search != "" {
			term := strings.ToLower(*filter.Search)
			return strings.Contains(strings.ToLower(in.FullName), term) ||
				strings.Contains(strings.ToLower(in.StudentID), term) ||
				strings.Contains(strings.ToLower(in.Email), term)
		}
		return true
	})
	return paginate(all, filter.Page, filter.Limit), int64(len(all)), nil
}

func (r internRepository) ListActive(_ context.Context) ([]intern.Intern, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(in intern.Intern) bool { return in.IsActive }), nil
}

func (r internRepository) CountActive(ctx context.Context) (int64, error) {
	active, _ := r.ListActive(ctx)
	return int64(len(active)), nil
}
