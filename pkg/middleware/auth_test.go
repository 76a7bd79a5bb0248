package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/ecohealth/sentinel/internal/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier accepts "goodtoken" (role user) and "admintoken" (role admin)
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	switch raw {
	case "goodtoken", "black-token":
		return &fakeToken{data: map[string]interface{}{"sub": "user1", "email": "test@example.com", "role": "user"}}, nil
	case "admintoken":
		return &fakeToken{data: map[string]interface{}{"sub": "admin1", "role": "admin"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func serve(g *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) { c.Status(http.StatusOK) })
	require.Equal(t, http.StatusUnauthorized, serve(g, "").Code)
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) { c.Status(http.StatusOK) })
	require.Equal(t, http.StatusUnauthorized, serve(g, "BadHeader").Code)
	require.Equal(t, http.StatusUnauthorized, serve(g, "Bearer nope").Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		claims, ok := c.Get("claims")
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"claims": claims, "sub": ClaimString(c, "sub")})
	})
	rw := serve(g, "Bearer goodtoken")

	require.Equal(t, http.StatusOK, rw.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Contains(t, got, "claims")
	require.Equal(t, "user1", got["sub"])
}

func TestAuthMiddleware_RejectsBlacklistedToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	sessions.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer sessions.SetBlacklistClient(nil)

	require.NoError(t, sessions.BlacklistAccessToken(context.Background(), "black-token", 5*time.Second))

	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) { c.Status(http.StatusOK) })
	require.Equal(t, http.StatusUnauthorized, serve(g, "Bearer black-token").Code)
	require.Equal(t, http.StatusOK, serve(g, "Bearer goodtoken").Code)
}

func TestRequireRole(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusForbidden, serve(g, "Bearer goodtoken").Code)
	require.Equal(t, http.StatusOK, serve(g, "Bearer admintoken").Code)
}

type rejectAll struct{}

func (rejectAll) Verify(ctx context.Context, raw string) (Token, error) {
	return nil, fmt.Errorf("rejected")
}

func TestChainVerifier(t *testing.T) {
	cv := ChainVerifier{nil, rejectAll{}, &fakeVerifier{}}
	_, err := cv.Verify(context.Background(), "goodtoken")
	require.NoError(t, err)

	_, err = cv.Verify(context.Background(), "unknown")
	require.Error(t, err)

	_, err = ChainVerifier{}.Verify(context.Background(), "goodtoken")
	require.Error(t, err)
}
