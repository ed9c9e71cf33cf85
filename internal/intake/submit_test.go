package intake

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitCtx(t *testing.T, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/submit-investment", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestSubmitRelaysToAdmin(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "ops@growvest.test")

	var gotUser, gotName, gotWallet, gotProof string
	orig := relay
	relay = func(userID, fullName, walletID, proofURL string) error {
		gotUser, gotName, gotWallet, gotProof = userID, fullName, walletID, proofURL
		return nil
	}
	defer func() { relay = orig }()

	body := `{"fullName":"Ada Obi","walletId":"0xabc","paymentScreenshot":"https://cdn.example/p.png"}`
	c, rec := submitCtx(t, body, "user-1")

	require.NoError(t, Submit(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Investment submission sent to admin")

	assert.Equal(t, "user-1", gotUser)
	assert.Equal(t, "Ada Obi", gotName)
	assert.Equal(t, "0xabc", gotWallet)
	assert.Equal(t, "https://cdn.example/p.png", gotProof)
}

func TestSubmitRequiresAllFields(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "ops@growvest.test")

	orig := relay
	relay = func(userID, fullName, walletID, proofURL string) error {
		t.Fatal("relay should not run for an incomplete submission")
		return nil
	}
	defer func() { relay = orig }()

	for _, body := range []string{
		`{"walletId":"0xabc","paymentScreenshot":"https://cdn.example/p.png"}`,
		`{"fullName":"Ada Obi","paymentScreenshot":"https://cdn.example/p.png"}`,
		`{"fullName":"Ada Obi","walletId":"0xabc"}`,
	} {
		c, rec := submitCtx(t, body, "user-1")
		require.NoError(t, Submit(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "All fields are required")
	}
}

func TestSubmitRequiresAuth(t *testing.T) {
	c, rec := submitCtx(t, `{}`, "")
	require.NoError(t, Submit(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitFailsWithoutAdminEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")

	body := `{"fullName":"Ada Obi","walletId":"0xabc","paymentScreenshot":"https://cdn.example/p.png"}`
	c, rec := submitCtx(t, body, "user-1")

	require.NoError(t, Submit(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email configuration error")
}

func TestSubmitSurfacesRelayFailure(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "ops@growvest.test")

	orig := relay
	relay = func(userID, fullName, walletID, proofURL string) error {
		return errors.New("smtp down")
	}
	defer func() { relay = orig }()

	body := `{"fullName":"Ada Obi","walletId":"0xabc","paymentScreenshot":"https://cdn.example/p.png"}`
	c, rec := submitCtx(t, body, "user-1")

	require.NoError(t, Submit(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to submit investment")
}
