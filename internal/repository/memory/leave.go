package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/leave"
)

type leaveRepository struct{ s *Store }

func (s *Store) Leaves() leave.LeaveRepository { return leaveRepository{s} }

func (r leaveRepository) join(l leave.Leave) leave.Leave {
	if in, ok := r.s.interns[l.InternID]; ok {
		l.InternName = in.FullName
		l.InternStudentID = in.StudentID
		l.InternUserID = in.UserID
	}
	return l
}

func (r leaveRepository) Create(_ context.Context, l leave.Leave) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = newID()
	l.CreatedAt = r.s.now()
	l.UpdatedAt = l.CreatedAt
	r.s.leaves[l.ID] = l
	return r.join(l), nil
}

func (r leaveRepository) GetByID(_ context.Context, id string) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return r.join(l), nil
}

func (r leaveRepository) List(_ context.Context, f leave.LeaveFilter) ([]leave.Leave, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.Leave
	for _, l := range r.s.leaves {
		switch {
		case f.InternID != nil && *f.InternID != "" && l.InternID != *f.InternID,
			f.Status != nil && *f.Status != "" && string(l.Status) != *f.Status,
			f.Type != nil && *f.Type != "" && string(l.Type) != *f.Type:
			continue
		}
		out = append(out, r.join(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r leaveRepository) Update(_ context.Context, l leave.Leave) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.leaves[l.ID]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	existing.Notes = l.Notes
	existing.Status = l.Status
	existing.ApprovedBy = l.ApprovedBy
	existing.ApprovedAt = l.ApprovedAt
	existing.RejectionReason = l.RejectionReason
	existing.UpdatedAt = r.s.now()
	r.s.leaves[l.ID] = existing
	return nil
}

func (r leaveRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.leaves[id]; !ok {
		return leave.ErrLeaveNotFound
	}
	delete(r.s.leaves, id)
	return nil
}

func (r leaveRepository) ListApprovedBetween(_ context.Context, from, to time.Time) ([]leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lo, hi := from.Format(dateLayout), to.Format(dateLayout)
	var out []leave.Leave
	for _, l := range r.s.leaves {
		if l.Status != leave.StatusApproved {
			continue
		}
		end := l.StartDate
		if l.EndDate != nil {
			end = *l.EndDate
		}
		if l.StartDate.Format(dateLayout) <= hi && end.Format(dateLayout) >= lo {
			out = append(out, r.join(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r leaveRepository) CountPending(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, l := range r.s.leaves {
		if l.Status == leave.StatusPending {
			n++
		}
	}
	return n, nil
}
