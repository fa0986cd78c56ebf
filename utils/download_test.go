package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ttfHeader is the sfnt version tag of a TrueType font file.
var ttfHeader = []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x0c}

func TestUtils_ShouldDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(ttfHeader)
	}))
	defer srv.Close()

	f, err := DownloadFile(srv.URL + "/DejaVuSans.ttf")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, ttfHeader, data)

	ctype, err := DetectContentType(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "font/ttf", ctype)
}

func TestUtils_DownloadShouldFailOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f, err := DownloadFile(srv.URL + "/missing.ttf")
	assert.Error(t, err)
	assert.Nil(t, f)
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/kernelogo/"))
	assert.False(t, IsValidUrl("/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"))
	assert.False(t, IsValidUrl("DejaVuSans.ttf"))
}

func TestUtils_ShouldDetectContentType(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(txt, []byte("definitely not a font"), 0644))
	ctype, err := DetectContentType(txt)
	require.NoError(t, err)
	assert.Contains(t, ctype, "text/plain")

	_, err = DetectContentType(filepath.Join(dir, "missing.ttf"))
	assert.Error(t, err)
}
