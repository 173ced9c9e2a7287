package admins_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/verdantapp/verdant/internal/app/features/admins"
	"github.com/verdantapp/verdant/internal/app/system/auth"
	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"github.com/verdantapp/verdant/internal/domain/models"
	"github.com/verdantapp/verdant/internal/testutil"
)

func newTestHandler(t *testing.T) (*admins.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := admins.NewHandler(db, httpjson.NewErrorLogger(logger), logger, auth.NewManager("test-secret", 0))
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

func TestCreateAdmin_RoleChain(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	super := f.CreateAdmin(ctx, "Root", "root@test.com", "pw", models.RoleSuperAdmin)
	regular := f.CreateAdmin(ctx, "Reg", "reg@test.com", "pw", models.RoleAdmin)

	countAdmins := func() int64 {
		n, err := f.DB().Collection("admins").CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("counting admins: %v", err)
		}
		return n
	}

	// A regular admin cannot create, and nothing is written.
	before := countAdmins()
	req := testutil.AsAdmin(jsonRequest("POST", "/create",
		`{"name":"X","email":"x@test.com","password":"pw","role":"admin"}`), regular.ID)
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("regular admin create: got %d, want 401", rec.Code)
	}
	if got := countAdmins(); got != before {
		t.Errorf("denied create wrote a document: %d admins, want %d", got, before)
	}

	// The superAdmin creates admin B.
	req = testutil.AsAdmin(jsonRequest("POST", "/create",
		`{"name":"B","email":"b@test.com","password":"pw","role":"admin"}`), super.ID)
	rec = httptest.NewRecorder()
	h.ServeCreate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("superAdmin create: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Errorf("status = %q, want success", env.Status)
	}
	data := env.Data.(map[string]any)
	if _, leaked := data["password"]; leaked {
		t.Error("create response leaked the password field")
	}

	// B is a plain admin, so B cannot create in turn.
	var b models.Admin
	if err := f.DB().Collection("admins").FindOne(ctx, bson.M{"email": "b@test.com"}).Decode(&b); err != nil {
		t.Fatalf("loading created admin: %v", err)
	}
	req = testutil.AsAdmin(jsonRequest("POST", "/create",
		`{"name":"C","email":"c@test.com","password":"pw","role":"admin"}`), b.ID)
	rec = httptest.NewRecorder()
	h.ServeCreate(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("created admin create: got %d, want 401", rec.Code)
	}
}

func TestAdminLogin_UniformFailure(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	f.CreateAdmin(ctx, "Root", "root@test.com", "correct", models.RoleSuperAdmin)

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown email", body: `{"email":"nobody@test.com","password":"correct"}`},
		{name: "wrong password", body: `{"email":"root@test.com","password":"wrong"}`},
	}
	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeLogin(rec, jsonRequest("POST", "/login", tt.body))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("got %d, want 401", rec.Code)
			}
			messages = append(messages, decodeEnvelope(t, rec).Message)
		})
	}
	if len(messages) == 2 && messages[0] != messages[1] {
		t.Errorf("failure messages differ, revealing which field was wrong: %q vs %q", messages[0], messages[1])
	}
}

func TestAdminLogin_Success(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	adm := f.CreateAdmin(ctx, "Root", "root@test.com", "correct", models.RoleSuperAdmin)

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, jsonRequest("POST", "/login", `{"email":"root@test.com","password":"correct"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec).Data.(map[string]any)
	if data["userId"] != adm.ID.Hex() {
		t.Errorf("userId = %v, want %s", data["userId"], adm.ID.Hex())
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("response carries no token")
	}

	claims, err := auth.NewManager("test-secret", 0).Verify(token)
	if err != nil {
		t.Fatalf("issued token fails verification: %v", err)
	}
	if claims.Subject != adm.ID.Hex() || claims.Kind != auth.KindAdmin {
		t.Errorf("claims = %s/%s, want %s/%s", claims.Subject, claims.Kind, adm.ID.Hex(), auth.KindAdmin)
	}
}

func TestDeleteAdmin_Policy(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	super := f.CreateAdmin(ctx, "Root", "root@test.com", "pw", models.RoleSuperAdmin)
	regular := f.CreateAdmin(ctx, "Reg", "reg@test.com", "pw", models.RoleAdmin)

	// A regular admin cannot delete a superAdmin, and the record stays.
	req := testutil.AsAdmin(httptest.NewRequest("DELETE", "/delete/"+super.ID.Hex(), nil), regular.ID)
	req = testutil.WithChiURLParam(req, "id", super.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeDelete(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
	if err := f.DB().Collection("admins").FindOne(ctx, bson.M{"_id": super.ID}).Err(); err != nil {
		t.Errorf("superAdmin record gone after denied delete: %v", err)
	}

	// An admin may delete their own record.
	req = testutil.AsAdmin(httptest.NewRequest("DELETE", "/delete/"+regular.ID.Hex(), nil), regular.ID)
	req = testutil.WithChiURLParam(req, "id", regular.ID.Hex())
	rec = httptest.NewRecorder()
	h.ServeDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("self delete: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestDeleteSquad_Cascade(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	super := f.CreateAdmin(ctx, "Root", "root@test.com", "pw", models.RoleSuperAdmin)
	u1 := f.CreateUser(ctx, "U1", "u1@test.com", "pw")
	u2 := f.CreateUser(ctx, "U2", "u2@test.com", "pw")
	sq := f.CreateSquad(ctx, "Greens", []primitive.ObjectID{u1.ID, u2.ID}, nil)

	req := testutil.AsAdmin(httptest.NewRequest("DELETE", "/delete/squad/"+sq.ID.Hex(), nil), super.ID)
	req = testutil.WithChiURLParam(req, "id", sq.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeDeleteSquad(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	// Squad document is gone.
	if n, _ := f.DB().Collection("squads").CountDocuments(ctx, bson.M{"_id": sq.ID}); n != 0 {
		t.Error("squad document still present")
	}
	// No user still references the squad.
	if n, _ := f.DB().Collection("users").CountDocuments(ctx, bson.M{"squads": sq.ID}); n != 0 {
		t.Errorf("%d users still reference the deleted squad", n)
	}
}

func TestDeleteSquad_RequiresSuperAdmin(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	regular := f.CreateAdmin(ctx, "Reg", "reg@test.com", "pw", models.RoleAdmin)
	u := f.CreateUser(ctx, "U", "u@test.com", "pw")
	sq := f.CreateSquad(ctx, "Greens", []primitive.ObjectID{u.ID}, nil)

	req := testutil.AsAdmin(httptest.NewRequest("DELETE", "/delete/squad/"+sq.ID.Hex(), nil), regular.ID)
	req = testutil.WithChiURLParam(req, "id", sq.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeDeleteSquad(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
	if n, _ := f.DB().Collection("squads").CountDocuments(ctx, bson.M{"_id": sq.ID}); n != 1 {
		t.Error("squad removed despite denied request")
	}
}

func TestProductModeration(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	super := f.CreateAdmin(ctx, "Root", "root@test.com", "pw", models.RoleSuperAdmin)
	p := f.CreateProduct(ctx, "Bamboo Brush", true)

	// Deactivate an existing product.
	req := testutil.AsAdmin(httptest.NewRequest("PUT", "/product/deactivate/"+p.ID.Hex(), nil), super.ID)
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeDeactivateProduct(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var got models.Product
	if err := f.DB().Collection("products").FindOne(ctx, bson.M{"_id": p.ID}).Decode(&got); err != nil {
		t.Fatalf("loading product: %v", err)
	}
	if got.IsActive {
		t.Error("product still active after deactivation")
	}

	// Deactivating a product that doesn't resolve is a 404.
	missing := f.CreateProduct(ctx, "Gone", true)
	if _, err := f.DB().Collection("products").DeleteOne(ctx, bson.M{"_id": missing.ID}); err != nil {
		t.Fatalf("removing product: %v", err)
	}
	req = testutil.AsAdmin(httptest.NewRequest("PUT", "/product/deactivate/"+missing.ID.Hex(), nil), super.ID)
	req = testutil.WithChiURLParam(req, "id", missing.ID.Hex())
	rec = httptest.NewRecorder()
	h.ServeDeactivateProduct(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deactivate missing: got %d, want 404", rec.Code)
	}

	// Delete requires superAdmin.
	regular := f.CreateAdmin(ctx, "Reg", "reg@test.com", "pw", models.RoleAdmin)
	req = testutil.AsAdmin(httptest.NewRequest("DELETE", "/delete/product/"+p.ID.Hex(), nil), regular.ID)
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec = httptest.NewRecorder()
	h.ServeDeleteProduct(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("regular admin product delete: got %d, want 401", rec.Code)
	}
}

func TestListAdmins_ExcludesPasswords(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	adm := f.CreateAdmin(ctx, "Root", "root@test.com", "pw", models.RoleSuperAdmin)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/all", nil), adm.ID)
	rec := httptest.NewRecorder()
	h.ServeListAdmins(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("admin list response contains a password field")
	}
}
