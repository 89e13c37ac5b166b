package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "admin@he2.ai",
		"role":  role,
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	// the config singleton reads JWT_SECRET on first use
	os.Setenv("JWT_SECRET", testSecret)
	defer os.Unsetenv("JWT_SECRET")

	r := newAuthTestRouter()

	testCases := []struct {
		testName   string
		authHeader string
		wantStatus int
	}{
		{
			testName:   "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			testName:   "not a bearer token",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			testName:   "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			testName:   "expired token",
			authHeader: "Bearer " + signToken(t, "admin", time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			testName:   "wrong role",
			authHeader: "Bearer " + signToken(t, "viewer", time.Now().Add(time.Hour)),
			wantStatus: http.StatusForbidden,
		},
		{
			testName:   "valid admin token",
			authHeader: "Bearer " + signToken(t, "admin", time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestHMACKeyFuncRejectsOtherSigningMethods(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	defer os.Unsetenv("JWT_SECRET")

	if _, err := HMACKeyFunc(jwt.New(jwt.SigningMethodRS256)); err == nil {
		t.Error("RS256 token accepted, want rejection")
	}
	if _, err := HMACKeyFunc(jwt.New(jwt.SigningMethodNone)); err == nil {
		t.Error("none-algorithm token accepted, want rejection")
	}
	key, err := HMACKeyFunc(jwt.New(jwt.SigningMethodHS256))
	if err != nil {
		t.Fatalf("HS256 token rejected: %v", err)
	}
	if _, ok := key.([]byte); !ok {
		t.Errorf("key type = %T, want []byte", key)
	}

	// an unsigned token must not pass a full parse either
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "admin@he2.ai",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to encode unsigned token: %v", err)
	}
	if parsed, err := jwt.Parse(raw, HMACKeyFunc); err == nil && parsed.Valid {
		t.Error("unsigned token parsed as valid")
	}
}
