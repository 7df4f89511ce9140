package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pathRequest struct {
	Path string `json:"path" validate:"required,startswith=/,max=2048"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&pathRequest{Path: "/pricing"}))

	err := ValidateRequest(&pathRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["path"])

	err = ValidateRequest(&pathRequest{Path: "pricing"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["path"], "must start with")
}

func decode(t *testing.T, body io.Reader) BaseResponse[json.RawMessage] {
	t.Helper()
	var out BaseResponse[json.RawMessage]
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/not-found", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "session not found") })
	app.Get("/invalid", func(c *fiber.Ctx) error { return ValidateRequest(&pathRequest{}) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/not-found", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.False(t, body.Success)
	assert.Equal(t, "session not found", body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/invalid", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	body = decode(t, resp.Body)
	assert.Equal(t, "Validation failed", body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	app := fiber.New()
	app.Get("/admin", JwtMiddleware(secret, RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", c.Locals("subject")))
	})

	call := func(header string) int {
		req := httptest.NewRequest("GET", "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	admin, _, err := IssueToken(secret, "admin", RoleAdmin, time.Hour)
	require.NoError(t, err)
	visitor, _, err := IssueToken(secret, "someone", "visitor", time.Hour)
	require.NoError(t, err)
	forged, _, err := IssueToken("other-secret", "admin", RoleAdmin, time.Hour)
	require.NoError(t, err)
	expired, _, err := IssueToken(secret, "admin", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 200, call("Bearer "+admin))
	assert.Equal(t, 401, call(""))
	assert.Equal(t, 401, call("Token "+admin))
	assert.Equal(t, 403, call("Bearer "+visitor))
	assert.Equal(t, 401, call("Bearer "+forged))
	assert.Equal(t, 401, call("Bearer "+expired))
}
