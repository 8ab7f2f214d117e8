package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authkeeper/internal/client/claims"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type decoded struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func post(t *testing.T, h http.Handler, path string, body any) (int, decoded) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var d decoded
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d), w.Body.String())
	return w.Code, d
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(Config{Secret: []byte("dev-secret"), TokenTTL: time.Minute}, nil)
	require.NoError(t, s.SeedUser(User{
		FullName: "Bob Tran", PhoneNumber: "0911111111", Email: "bob@example.org", UserName: "bob", Premium: true,
	}, "bobpw"))
	return s
}

func TestLogin_IssuesTokenWithBackendClaims(t *testing.T) {
	s := newTestServer(t)

	code, body := post(t, s.Handler(), "/Auth/login", map[string]string{"userName": "bob", "password": "bobpw"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, statusSuccess, body.Status)
	assert.Equal(t, MsgLoginOK, body.Message)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))

	p, err := claims.ProfileFromToken(data.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", p.UserName)
	assert.Equal(t, "Bob Tran", p.UniqueName)
	assert.Equal(t, "bob@example.org", p.Email)
	assert.Equal(t, "0911111111", p.MobilePhone)
	assert.Equal(t, "True", p.IsPremium)
	assert.Equal(t, claims.ThemePremium, p.Theme)
	assert.NotEmpty(t, p.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)

	code, body := post(t, s.Handler(), "/Auth/login", map[string]string{"userName": "bob", "password": "wrong"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, statusFailure, body.Status)
	assert.Equal(t, MsgInvalidCreds, body.Message)
}

func TestLogin_BadRequest(t *testing.T) {
	s := newTestServer(t)

	code, body := post(t, s.Handler(), "/Auth/login", map[string]string{"userName": "bob"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, statusFailure, body.Status)
}

func TestRegisterVerifyLogin_Flow(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	reg := map[string]string{
		"fullName": "Carol Le", "phoneNumber": "0922222222", "email": "carol@example.org",
		"userName": "carol", "password": "carolpw",
	}
	_, body := post(t, h, "/Auth/register", reg)
	require.Equal(t, statusSuccess, body.Status, body.Message)

	_, body = post(t, h, "/Auth/login", map[string]string{"userName": "carol", "password": "carolpw"})
	assert.Equal(t, MsgNotVerified, body.Message)

	_, body = post(t, h, "/Auth/verify-email", map[string]string{"email": "carol@example.org", "otp": "000000"})
	if body.Status == statusFailure {
		assert.Equal(t, MsgInvalidOTP, body.Message)
	}

	otp, ok := s.PendingOTP("carol@example.org")
	if ok {
		_, body = post(t, h, "/Auth/verify-email", map[string]string{"email": "carol@example.org", "otp": otp})
	}
	require.Equal(t, statusSuccess, body.Status)
	assert.JSONEq(t, `{"isVerified":true}`, string(body.Data))

	_, body = post(t, h, "/Auth/login", map[string]string{"userName": "carol", "password": "carolpw"})
	assert.Equal(t, statusSuccess, body.Status)
}

func TestRegister_Duplicates(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	_, body := post(t, h, "/Auth/register", map[string]string{
		"fullName": "B", "phoneNumber": "1", "email": "BOB@example.org", "userName": "bobby", "password": "pass",
	})
	assert.Equal(t, statusFailure, body.Status)
	assert.Equal(t, MsgEmailExists, body.Message)

	_, body = post(t, h, "/Auth/register", map[string]string{
		"fullName": "B", "phoneNumber": "1", "email": "other@example.org", "userName": "bob", "password": "pass",
	})
	assert.Equal(t, MsgUserNameExists, body.Message)
}

func TestVerify_UnknownAccount(t *testing.T) {
	s := newTestServer(t)

	_, body := post(t, s.Handler(), "/Auth/verify-email", map[string]string{"email": "nobody@example.org", "otp": "123456"})
	assert.Equal(t, statusFailure, body.Status)
	assert.Equal(t, MsgAccountNotFound, body.Message)
}

func TestNewOTP_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := newOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
	}
}
