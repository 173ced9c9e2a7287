package users_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/verdantapp/verdant/internal/app/features/users"
	"github.com/verdantapp/verdant/internal/app/system/auth"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/domain/models"
	"github.com/verdantapp/verdant/internal/testutil"
)

func newTestHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := users.NewHandler(db, httpjson.NewErrorLogger(logger), logger, auth.NewManager("test-secret", 0))
	return h, testutil.NewFixtures(t, db)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httpjson.Envelope {
	t.Helper()
	var env httpjson.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response envelope: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestSignup(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	rec := httptest.NewRecorder()
	h.ServeSignup(rec, jsonRequest("POST", "/signup",
		`{"name":"Ada","email":"ada@test.com","password":"pw","contact":"+1555"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"password"`) {
		t.Error("signup response contains a password field")
	}

	var u models.User
	if err := f.DB().Collection("users").FindOne(ctx, bson.M{"email": "ada@test.com"}).Decode(&u); err != nil {
		t.Fatalf("loading created user: %v", err)
	}
	if u.Referral.Code == "" {
		t.Error("created user has no referral code")
	}
	if u.Password == "pw" {
		t.Error("password stored in plaintext")
	}

	// Missing required fields.
	rec = httptest.NewRecorder()
	h.ServeSignup(rec, jsonRequest("POST", "/signup", `{"name":"NoEmail","password":"pw"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing fields: got %d, want 400", rec.Code)
	}
}

func TestSignup_ReferralCredit(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	referrer := f.CreateUser(ctx, "Ref", "ref@test.com", "pw")
	_, err := f.DB().Collection("users").UpdateOne(ctx,
		bson.M{"_id": referrer.ID},
		bson.M{"$set": bson.M{"referral.code": "GREEN123"}},
	)
	if err != nil {
		t.Fatalf("setting referral code: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeSignup(rec, jsonRequest("POST", "/signup",
		`{"name":"New","email":"new@test.com","password":"pw","contact":"+1666","referrerCode":"GREEN123"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var got models.User
	if err := f.DB().Collection("users").FindOne(ctx, bson.M{"_id": referrer.ID}).Decode(&got); err != nil {
		t.Fatalf("reloading referrer: %v", err)
	}
	if len(got.Referral.ReferredUsers) != 1 {
		t.Errorf("referrer has %d referred users, want 1", len(got.Referral.ReferredUsers))
	}
	if got.Referral.TotalEarned == 0 {
		t.Error("referrer earned nothing")
	}

	// An unknown referral code does not fail the signup.
	rec = httptest.NewRecorder()
	h.ServeSignup(rec, jsonRequest("POST", "/signup",
		`{"name":"Solo","email":"solo@test.com","password":"pw","contact":"+1777","referrerCode":"NOPE"}`))
	if rec.Code != http.StatusCreated {
		t.Errorf("unknown code signup: got %d, want 201", rec.Code)
	}
}

func TestUserLogin_UniformFailure(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	f.CreateUser(ctx, "Ada", "ada@test.com", "correct")

	var messages []string
	for _, body := range []string{
		`{"email":"nobody@test.com","password":"correct"}`,
		`{"email":"ada@test.com","password":"wrong"}`,
	} {
		rec := httptest.NewRecorder()
		h.ServeLogin(rec, jsonRequest("POST", "/login", body))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
		messages = append(messages, decodeEnvelope(t, rec).Message)
	}
	if messages[0] != messages[1] {
		t.Errorf("failure messages differ: %q vs %q", messages[0], messages[1])
	}
}

func TestMe(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	u := f.CreateUser(ctx, "Ada", "ada@test.com", "pw")

	req := testutil.AsUser(httptest.NewRequest("GET", "/me", nil), u.ID)
	rec := httptest.NewRecorder()
	h.ServeMe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"password"`) {
		t.Error("profile response contains a password field")
	}

	data := decodeEnvelope(t, rec).Data.(map[string]any)
	if data["email"] != "ada@test.com" {
		t.Errorf("email = %v", data["email"])
	}
}

func TestConnect_Lifecycle(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	a := f.CreateUser(ctx, "A", "a@test.com", "pw")
	b := f.CreateUser(ctx, "B", "b@test.com", "pw")

	connect := func() *httptest.ResponseRecorder {
		req := testutil.AsUser(httptest.NewRequest("POST", "/connect/"+b.ID.Hex(), nil), a.ID)
		req = testutil.WithChiURLParam(req, "id", b.ID.Hex())
		rec := httptest.NewRecorder()
		h.ServeConnect(rec, req)
		return rec
	}

	// First request queues as pending.
	if rec := connect(); rec.Code != http.StatusOK {
		t.Fatalf("connect: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	// A second request from the same sender is rejected.
	if rec := connect(); rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate connect: got %d, want 400", rec.Code)
	}
	// Connecting to yourself is rejected.
	req := testutil.AsUser(httptest.NewRequest("POST", "/connect/"+a.ID.Hex(), nil), a.ID)
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeConnect(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self connect: got %d, want 400", rec.Code)
	}

	// B approves A's request: both sides gain the connection.
	req = testutil.AsUser(httptest.NewRequest("PUT", "/connect/approve/"+a.ID.Hex(), nil), b.ID)
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec = httptest.NewRecorder()
	h.ServeApproveConnect(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var gotA, gotB models.User
	if err := f.DB().Collection("users").FindOne(ctx, bson.M{"_id": a.ID}).Decode(&gotA); err != nil {
		t.Fatalf("reloading A: %v", err)
	}
	if err := f.DB().Collection("users").FindOne(ctx, bson.M{"_id": b.ID}).Decode(&gotB); err != nil {
		t.Fatalf("reloading B: %v", err)
	}
	if len(gotA.Connections) != 1 || len(gotB.Connections) != 1 {
		t.Errorf("connections asymmetric: A=%d B=%d, want 1/1", len(gotA.Connections), len(gotB.Connections))
	}
	if len(gotB.ConnectionRequests) != 1 || gotB.ConnectionRequests[0].Status != "approved" {
		t.Errorf("request status = %+v, want approved", gotB.ConnectionRequests)
	}

	// Approving again fails: no pending request remains.
	req = testutil.AsUser(httptest.NewRequest("PUT", "/connect/approve/"+a.ID.Hex(), nil), b.ID)
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec = httptest.NewRecorder()
	h.ServeApproveConnect(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double approve: got %d, want 404", rec.Code)
	}
}

func TestFeedHide(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	u := f.CreateUser(ctx, "U", "u@test.com", "pw")
	sq := f.CreateSquad(ctx, "S", nil, nil)
	p := f.CreatePost(ctx, sq.ID, u.ID, "Annoying")

	req := testutil.AsUser(httptest.NewRequest("PUT", "/feed/hide/"+p.ID.Hex(), nil), u.ID)
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeFeedHide(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var got models.User
	if err := f.DB().Collection("users").FindOne(ctx, bson.M{"_id": u.ID}).Decode(&got); err != nil {
		t.Fatalf("reloading user: %v", err)
	}
	if len(got.Feed.Excluded) != 1 || got.Feed.Excluded[0] != p.ID {
		t.Errorf("feed.excluded = %v, want [%s]", got.Feed.Excluded, p.ID.Hex())
	}

	// Hiding a post that doesn't exist is a 404.
	fake := fmt.Sprintf("%024x", 0)
	req = testutil.AsUser(httptest.NewRequest("PUT", "/feed/hide/"+fake, nil), u.ID)
	req = testutil.WithChiURLParam(req, "id", fake)
	rec = httptest.NewRecorder()
	h.ServeFeedHide(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post: got %d, want 404", rec.Code)
	}
}
