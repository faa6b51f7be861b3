package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cake.png", "cake.png"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.png", "evil.png"},
		{"/absolute/path/pic.jpeg", "pic.jpeg"},
		{"weird?na*me|.png", "weird_na_me_.png"},
		{"UPPER-case_ok.PNG", "UPPER-case_ok.PNG"},
		{".hidden", "hidden"},
		{"..", ""},
		{"....", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

// fileHeader builds a real multipart.FileHeader the way a request would
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image_file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("image_file")
	require.NoError(t, err)
	return fh
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	name, err := store.Save(fileHeader(t, "my cake.png", "image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "my_cake.png", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestStoreSaveOverwritesSameName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "cake.png", "first"))
	require.NoError(t, err)
	name, err := store.Save(fileHeader(t, "cake.png", "second"))
	require.NoError(t, err)

	// Last write wins for identical sanitized names
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestStoreSaveRejectsUnsafeName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "..", "whatever"))
	assert.ErrorIs(t, err, ErrUnsafeFilename)
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
