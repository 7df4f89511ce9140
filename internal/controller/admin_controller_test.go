package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/pkg/serverutils"
	"lead-engagement-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminSecret = "admin-secret"

type stubAdminService struct {
	lastQuery *dto.LeadSignalQuery
}

func (s *stubAdminService) Login(ctx context.Context, req *dto.AdminLoginRequest, ip string) (*dto.AdminLoginResponse, error) {
	if req.Password != "letmein" {
		return nil, service.ErrInvalidCredentials
	}
	token, exp, err := serverutils.IssueToken(adminSecret, "admin", serverutils.RoleAdmin, time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{AccessToken: token, ExpiresAt: exp}, nil
}

func (s *stubAdminService) GetLeadStats(ctx context.Context) (*dto.LeadStats, error) {
	return &dto.LeadStats{Total: 2, Hot: 1, Cold: 1, ByTopic: map[string]int64{}}, nil
}

func (s *stubAdminService) ListLeadSignals(ctx context.Context, query *dto.LeadSignalQuery) (*dto.LeadSignalListResponse, error) {
	s.lastQuery = query
	return &dto.LeadSignalListResponse{Page: 1, Limit: 20}, nil
}

func (s *stubAdminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	return []*dto.LogListResponse{}, nil
}

func (s *stubAdminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	return nil, assert.AnError
}

func newAdminApp(t *testing.T) (*fiber.App, *stubAdminService) {
	t.Helper()
	stub := &stubAdminService{}
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	NewAdminController(stub, adminSecret).RegisterRoutes(app.Group("/api"))
	return app, stub
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	token, _, err := serverutils.IssueToken(adminSecret, "admin", role, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAdminControllerLogin(t *testing.T) {
	app, _ := newAdminApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/admin/login", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := doJSON(t, app, http.MethodPost, "/api/admin/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "password")

	status, env = doJSON(t, app, http.MethodPost, "/api/admin/login", `{"password":"letmein"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "access_token")
}

func TestAdminControllerRequiresToken(t *testing.T) {
	app, stub := newAdminApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/leads/stats", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/leads/stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "visitor"))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/leads/signals?level=hot&page=2", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, serverutils.RoleAdmin))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, stub.lastQuery)
	assert.Equal(t, "hot", stub.lastQuery.Level)
	assert.Equal(t, 2, stub.lastQuery.Page)
}

func TestAdminControllerRejectsBadLevel(t *testing.T) {
	app, _ := newAdminApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/leads/signals?level=lukewarm", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, serverutils.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminControllerLogDetailNotFound(t *testing.T) {
	app, _ := newAdminApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/logs/abc", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+adminToken(t, serverutils.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
