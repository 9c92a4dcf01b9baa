package authfeature_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	authfeature "github.com/web-rebel/devlink/internal/app/features/auth"
	"github.com/web-rebel/devlink/internal/app/system/auth"
	"github.com/web-rebel/devlink/internal/app/system/ratelimit"
	"github.com/web-rebel/devlink/internal/testutil"
)

func newHandler(t *testing.T) (*authfeature.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewTokens("test-secret", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	h := authfeature.NewHandler(db, tokens, ratelimit.NewCredentialLimiter(), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleLogin_Succeeds(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateUser(ctx, "Ada Lovelace", "ada@example.com")

	rec := httptest.NewRecorder()
	h.HandleLogin(rec, testutil.JSONRequest(t, "POST", "/api/auth", map[string]string{
		"email":    "ada@example.com",
		"password": testutil.FixturePassword,
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.Token == "" {
		t.Fatal("expected a token")
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateUser(ctx, "Ada Lovelace", "ada@example.com")

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@example.com", testutil.FixturePassword},
		{"wrong password", "ada@example.com", "wrong-password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, testutil.JSONRequest(t, "POST", "/api/auth", map[string]string{
				"email": tc.email, "password": tc.pass,
			}))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d", rec.Code)
			}
			var body struct {
				Errors []struct {
					Msg string `json:"msg"`
				} `json:"errors"`
			}
			testutil.DecodeBody(t, rec, &body)
			if len(body.Errors) != 1 || body.Errors[0].Msg != "Invalid credentials" {
				t.Errorf("body: %+v", body)
			}
		})
	}
}

func TestHandleCurrentUser_ReturnsUserWithoutPassword(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	user := fx.CreateUser(ctx, "Ada Lovelace", "ada@example.com")

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/auth", nil), user.ID)
	rec := httptest.NewRecorder()
	h.HandleCurrentUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var body map[string]any
	testutil.DecodeBody(t, rec, &body)
	if body["email"] != "ada@example.com" {
		t.Errorf("email: %v", body["email"])
	}
	if _, present := body["password"]; present {
		t.Error("password leaked in response")
	}
}

func TestHandleCurrentUser_DeletedAccount(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/auth", nil), primitive.NewObjectID())
	rec := httptest.NewRecorder()
	h.HandleCurrentUser(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d", rec.Code)
	}
}
