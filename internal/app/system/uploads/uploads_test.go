package uploads_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/verdantapp/verdant/internal/app/system/uploads"
	"github.com/verdantapp/verdant/internal/testutil"
)

func multipartRequest(t *testing.T, write func(mw *multipart.Writer)) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	write(mw)
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	r := httptest.NewRequest("POST", "/create", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestSaveImage_StoresFileAndRecordsURL(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	dir := t.TempDir()
	up := uploads.New(dir, "/uploads", zap.NewNop())

	col := db.Collection("posts")
	id := primitive.NewObjectID()
	if _, err := col.InsertOne(ctx, bson.M{"_id": id, "image": []string{}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	req := multipartRequest(t, func(mw *multipart.Writer) {
		fw, err := mw.CreateFormFile("image", "leaf.png")
		if err != nil {
			t.Fatalf("creating file part: %v", err)
		}
		if _, err := fw.Write([]byte("png bytes")); err != nil {
			t.Fatalf("writing file part: %v", err)
		}
	})

	url, err := up.SaveImage(ctx, req, "image", col, "image", id)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want /uploads/<uuid>.png", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	var doc struct {
		Images []string `bson:"image"`
	}
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(doc.Images) != 1 || doc.Images[0] != url {
		t.Errorf("image field = %v, want [%s]", doc.Images, url)
	}
}

// The image is optional on create and update. Requests that carry no
// file, including plain JSON bodies that are not multipart at all,
// must be a no-op rather than an error.
func TestSaveImage_NoFileIsNoOp(t *testing.T) {
	ctx := testutil.TestContext(t)
	up := uploads.New(t.TempDir(), "/uploads", zap.NewNop())

	jsonReq := httptest.NewRequest("POST", "/create", strings.NewReader(`{"title":"t"}`))
	jsonReq.Header.Set("Content-Type", "application/json")

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"json body", jsonReq},
		{"multipart without the field", multipartRequest(t, func(mw *multipart.Writer) {
			if err := mw.WriteField("title", "t"); err != nil {
				t.Fatalf("writing field: %v", err)
			}
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := up.SaveImage(ctx, tt.req, "image", nil, "image", primitive.NewObjectID())
			if err != nil {
				t.Errorf("SaveImage = %v, want nil", err)
			}
			if url != "" {
				t.Errorf("url = %q, want empty", url)
			}
		})
	}
}

func TestSaveImage_RejectsUnsupportedType(t *testing.T) {
	ctx := testutil.TestContext(t)
	up := uploads.New(t.TempDir(), "/uploads", zap.NewNop())

	req := multipartRequest(t, func(mw *multipart.Writer) {
		fw, err := mw.CreateFormFile("image", "payload.exe")
		if err != nil {
			t.Fatalf("creating file part: %v", err)
		}
		if _, err := fw.Write([]byte("mz")); err != nil {
			t.Fatalf("writing file part: %v", err)
		}
	})

	if _, err := up.SaveImage(ctx, req, "image", nil, "image", primitive.NewObjectID()); err == nil {
		t.Error("expected an error for a non-image extension")
	}
}
