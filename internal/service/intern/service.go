package intern

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
)

type internServiceImpl struct {
	internRepo intern.InternRepository
}

func NewInternService(internRepo intern.InternRepository) intern.InternService {
	return &internServiceImpl{internRepo: internRepo}
}

// Me implements intern.InternService.
func (s *internServiceImpl) Me(ctx context.Context) (intern.InternResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return intern.InternResponse{}, err
	}

	profile, err := s.internRepo.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return intern.InternResponse{}, err
	}
	return toInternResponse(profile), nil
}

// CreateProfile implements intern.InternService.
func (s *internServiceImpl) CreateProfile(ctx context.Context, req intern.CreateProfileRequest) (intern.InternResponse, error) {
	if err := req.Validate(); err != nil {
		return intern.InternResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return intern.InternResponse{}, err
	}
	if claims.Role != user.RoleIntern {
		return intern.InternResponse{}, user.ErrInsufficientPermissions
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		endDate = &parsed
	}

	created, err := s.internRepo.Create(ctx, intern.Intern{
		UserID:                claims.UserID,
		StudentID:             req.StudentID,
		FullName:              req.FullName,
		School:                req.School,
		Course:                req.Course,
		YearLevel:             req.YearLevel,
		Phone:                 req.Phone,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		RequiredHours:         req.RequiredHours,
		CompanyName:           req.CompanyName,
		SupervisorName:        req.SupervisorName,
		SupervisorEmail:       req.SupervisorEmail,
		StartDate:             startDate,
		EndDate:               endDate,
		IsActive:              true,
	})
	if err != nil {
		return intern.InternResponse{}, fmt.Errorf("failed to create intern profile: %w", err)
	}

	return toInternResponse(created), nil
}

// GetByID implements intern.InternService.
func (s *internServiceImpl) GetByID(ctx context.Context, id string) (intern.InternResponse, error) {
	profile, err := s.internRepo.GetByID(ctx, id)
	if err != nil {
		return intern.InternResponse{}, err
	}
	return toInternResponse(profile), nil
}

// List implements intern.InternService.
func (s *internServiceImpl) List(ctx context.Context, filter intern.InternFilter) (intern.ListInternResponse, error) {
	if err := filter.Validate(); err != nil {
		return intern.ListInternResponse{}, err
	}

	interns, total, err := s.internRepo.List(ctx, filter)
	if err != nil {
		return intern.ListInternResponse{}, fmt.Errorf("failed to list interns: %w", err)
	}

	responses := make([]intern.InternResponse, 0, len(interns))
	for _, in := range interns {
		responses = append(responses, toInternResponse(in))
	}

	return intern.ListInternResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Interns:    responses,
	}, nil
}

func toInternResponse(in intern.Intern) intern.InternResponse {
	resp := intern.InternResponse{
		ID:                    in.ID,
		UserID:                in.UserID,
		Email:                 in.Email,
		StudentID:             in.StudentID,
		FullName:              in.FullName,
		School:                in.School,
		Course:                in.Course,
		YearLevel:             in.YearLevel,
		Phone:                 in.Phone,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		RequiredHours:         in.RequiredHours,
		CompanyName:           in.CompanyName,
		SupervisorName:        in.SupervisorName,
		SupervisorEmail:       in.SupervisorEmail,
		StartDate:             in.StartDate.Format("2006-01-02"),
		IsActive:              in.IsActive,
	}
	if in.EndDate != nil {
		end := in.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}
