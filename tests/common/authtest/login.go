//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"portfolio-services/internal/handler/dto/request"
	"portfolio-services/internal/handler/dto/response"
	"portfolio-services/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginAdmin exchanges the admin credentials for a bearer token.
func LoginAdmin(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result response.LoginResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &result)
	require.NotEmpty(t, result.Token, "login response missing token")

	return result.Token
}
