package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.Issue(Identity{ID: 7, Email: "jane@example.com"})
	require.NoError(t, err)

	id, err := m.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 7, Email: "jane@example.com"}, id)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, err := m.Issue(Identity{ID: 7})
	require.NoError(t, err)

	t.Run("Wrong Secret", func(t *testing.T) {
		_, err := NewJWTManager("other", time.Hour).Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		later := NewJWTManager("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Authenticate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.Authenticate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewJWTManager("s", 0).ttl)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Hour)
	token, err := m.Issue(Identity{ID: 3, Email: "a@b.c"})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", Middleware(m), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, id)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"Missing", "", http.StatusUnauthorized},
		{"Not Bearer", "Basic abc", http.StatusUnauthorized},
		{"Invalid", "Bearer nope", http.StatusForbidden},
		{"Valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"id":3,"email":"a@b.c"}`, w.Body.String())
			}
		})
	}
}
