package upload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["imageFile"][0]
}

func newService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewService(dir, nil)
	require.NoError(t, err)
	return s, dir
}

func TestNewService_CreatesRoot(t *testing.T) {
	_, dir := newService(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewService_RootIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewService(filepath.Join(file, "uploads"), nil)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestStore_WritesFileAndReturnsPublicPath(t *testing.T) {
	s, dir := newService(t)
	fh := newFileHeader(t, "croissant.jpg", "image/jpeg", []byte("jpeg-bytes"))

	path, err := s.Store(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, "_croissant.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestStore_UniqueNamesForSameFile(t *testing.T) {
	s, _ := newService(t)

	first, err := s.Store(newFileHeader(t, "roti.png", "image/png", []byte("a")))
	require.NoError(t, err)
	second, err := s.Store(newFileHeader(t, "roti.png", "image/png", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_EmptyOrMissingFileIsNoop(t *testing.T) {
	s, dir := newService(t)

	path, err := s.Store(nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = s.Store(newFileHeader(t, "empty.jpg", "image/jpeg", nil))
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_StripsDirectoryFromOriginalName(t *testing.T) {
	s, dir := newService(t)

	path, err := s.Store(newFileHeader(t, "../../etc/tart.gif", "image/gif", []byte("gif")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_tart.gif"))

	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	assert.NoError(t, err)
}

func TestStore_RootRemovedAndUnrecoverable(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "uploads")
	s, err := NewService(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("blocker"), 0o644))

	_, err = s.Store(newFileHeader(t, "pie.jpg", "image/jpeg", []byte("x")))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestDelete_ExistingFile(t *testing.T) {
	s, dir := newService(t)
	path, err := s.Store(newFileHeader(t, "donat.jpg", "image/jpeg", []byte("x")))
	require.NoError(t, err)

	assert.True(t, s.Delete(path))

	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	assert.True(t, os.IsNotExist(err))
}

func TestDelete_MissingFileReturnsFalse(t *testing.T) {
	s, _ := newService(t)
	assert.False(t, s.Delete("/uploads/x.jpg"))
}

func TestDelete_RejectsForeignPaths(t *testing.T) {
	s, dir := newService(t)
	outside := filepath.Join(filepath.Dir(dir), "keep.jpg")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	assert.False(t, s.Delete("not/a/path"))
	assert.False(t, s.Delete(""))
	assert.False(t, s.Delete("/static/keep.jpg"))
	assert.False(t, s.Delete("/uploads/../keep.jpg"))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"image/gif", true},
		{"image/jpeg; charset=binary", true},
		{"image/webp", false},
		{"application/pdf", false},
		{"", false},
	}

	s, _ := newService(t)
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			fh := newFileHeader(t, "f.bin", tt.contentType, []byte("x"))
			if tt.contentType == "" {
				fh.Header.Del("Content-Type")
			}
			assert.Equal(t, tt.want, s.IsImage(fh))
		})
	}

	assert.False(t, s.IsImage(nil))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil, 10))
	assert.NoError(t, Validate(newFileHeader(t, "a.jpg", "image/jpeg", []byte("123")), 10))
	assert.ErrorIs(t, Validate(newFileHeader(t, "a.jpg", "image/jpeg", []byte("0123456789ab")), 10), ErrFileTooLarge)
	assert.ErrorIs(t, Validate(newFileHeader(t, "a.txt", "text/plain", []byte("1")), 10), ErrInvalidMimeType)
}
