package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/pkg/logger"
	"lead-engagement-be/internal/pkg/serverutils"
	"lead-engagement-be/internal/repository"
	"lead-engagement-be/pkg/admin/dashboard"
	"lead-engagement-be/pkg/admin/mapper"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	adminModule      = "AdminService"
	adminTokenExpiry = 12 * time.Hour

	// zapcore.ISO8601TimeEncoder layout
	logTimeLayout = "2006-01-02T15:04:05.000Z0700"
)

type IAdminService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest, ipAddress string) (*dto.AdminLoginResponse, error)
	GetLeadStats(ctx context.Context) (*dto.LeadStats, error)
	ListLeadSignals(ctx context.Context, query *dto.LeadSignalQuery) (*dto.LeadSignalListResponse, error)
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	passwordHash string
	jwtSecret    string
	leads        repository.LeadSignalRepository
	dashboard    *dashboard.Aggregator
	logger       logger.ILogger
}

func NewAdminService(passwordHash, jwtSecret string, leads repository.LeadSignalRepository, log logger.ILogger) IAdminService {
	return &adminService{
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		leads:        leads,
		dashboard:    dashboard.NewAggregator(log),
		logger:       log,
	}
}

func (s *adminService) Login(ctx context.Context, req *dto.AdminLoginRequest, ipAddress string) (*dto.AdminLoginResponse, error) {
	if s.passwordHash == "" || s.jwtSecret == "" {
		s.logger.Warn(adminModule, "Admin login attempted but ADMIN_PASSWORD_HASH or JWT_SECRET is not set", nil)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		s.logger.Warn(adminModule, "Admin login failed", map[string]interface{}{"ip": ipAddress})
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := serverutils.IssueToken(s.jwtSecret, "admin", serverutils.RoleAdmin, adminTokenExpiry)
	if err != nil {
		return nil, err
	}

	s.logger.Info(adminModule, "Admin logged in", map[string]interface{}{"ip": ipAddress})
	return &dto.AdminLoginResponse{AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *adminService) GetLeadStats(ctx context.Context) (*dto.LeadStats, error) {
	return s.dashboard.GetLeadStats(ctx, s.leads)
}

func (s *adminService) ListLeadSignals(ctx context.Context, query *dto.LeadSignalQuery) (*dto.LeadSignalListResponse, error) {
	page, limit := query.Page, query.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	filter := repository.LeadSignalFilter{
		SessionID: query.SessionId,
		EventType: query.Type,
		Level:     query.Level,
	}
	if query.Since != "" {
		since, err := time.Parse(time.RFC3339, query.Since)
		if err != nil {
			return nil, fmt.Errorf("invalid since: %w", err)
		}
		filter.Since = since
	}
	signals, total, err := s.leads.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &dto.LeadSignalListResponse{
		Items: mapper.LeadSignalsToResponse(signals),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// maxLogLimit bounds one page of the log viewer, matching the signal listing.
const maxLogLimit = 200

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	logs, err := s.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, l := range logs {
		ts, _ := time.Parse(logTimeLayout, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	l, err := s.logger.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(logTimeLayout, l.Timestamp)
	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: l.Details,
	}, nil
}
