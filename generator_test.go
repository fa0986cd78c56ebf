package kernelogo

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readLogos returns the content of every file found under dir keyed by its relative path.
func readLogos(t *testing.T, dir string) map[string][]byte {
	t.Helper()

	files := make(map[string][]byte)
	err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !f.Mode().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[rel] = data
		return nil
	})
	require.NoError(t, err)

	return files
}

func TestGenerator_SaveAllShouldWriteEveryLogo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultOutputDir)

	var progress bytes.Buffer
	g := NewGenerator(NewRenderer(DefaultTable))
	g.Progress = &progress

	require.NoError(t, g.SaveAll(dir))

	files := readLogos(t, dir)
	assert.Len(t, files, 2*len(DefaultTable))

	for _, e := range DefaultTable {
		for _, size := range []int{SmallSize, LargeSize} {
			data, ok := files[filepath.Join(e.ID, LogoFileName(size))]
			require.True(t, ok, "missing %s logo of size %d", e.ID, size)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, size, img.Bounds().Dx())
			assert.Equal(t, size, img.Bounds().Dy())

			// IHDR color type 2 is truecolor without alpha.
			assert.Equal(t, byte(2), data[25], "%s logo should be saved as RGB", e.ID)
		}
	}

	lines := strings.Split(strings.TrimSpace(progress.String()), "\n")
	require.Len(t, lines, len(DefaultTable))
	for i, e := range DefaultTable {
		assert.Equal(t, "Created logos for "+e.ID, lines[i])
	}
}

func TestGenerator_SaveAllShouldBeIdempotent(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(NewRenderer(DefaultTable))

	require.NoError(t, g.SaveAll(dir))
	first := readLogos(t, dir)

	require.NoError(t, g.SaveAll(dir))
	second := readLogos(t, dir)

	assert.Len(t, second, 2*len(DefaultTable))
	assert.Equal(t, first, second)
}

func TestGenerator_SaveAllShouldPropagateIOErrors(t *testing.T) {
	tmp := t.TempDir()
	g := NewGenerator(NewRenderer(DefaultTable))

	// The output directory is a regular file.
	file := filepath.Join(tmp, "logos")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, g.SaveAll(file))

	// One of the kernel directories is a regular file.
	dir := filepath.Join(tmp, "kernels")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "java11"), nil, 0644))

	var progress bytes.Buffer
	g.Progress = &progress
	err := g.SaveAll(dir)
	assert.Error(t, err)
	assert.Contains(t, progress.String(), "Created logos for cpp26")
	assert.NotContains(t, progress.String(), "Created logos for java11")
}

func TestGenerator_PackagingCommands(t *testing.T) {
	g := NewGenerator(NewRenderer(DefaultTable))

	cmds := g.PackagingCommands()
	require.Len(t, cmds, len(DefaultTable))

	for i, e := range DefaultTable {
		assert.Equal(t,
			"COPY kernel-logos/"+e.ID+"/logo-*.png /usr/local/share/jupyter/kernels/"+e.ID+"/",
			cmds[i],
		)
	}

	var buf bytes.Buffer
	require.NoError(t, g.WritePackagingCommands(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(DefaultTable)+1)
	assert.Equal(t, "# Dockerfile commands to copy kernel logos:", lines[0])
	assert.Equal(t, cmds, lines[1:])
}

func TestGenerator_PackagingCommandsShouldUseCustomPaths(t *testing.T) {
	table := Table{
		{ID: "deno", Background: "#000000", Foreground: "white", Label: "De"},
		{ID: "ocaml", Background: "orange", Foreground: "black", Label: "ML", Sublabel: "5"},
	}
	g := NewGenerator(NewRenderer(table))
	g.SourceDir = "build/logos"
	g.KernelsDir = "/opt/conda/share/jupyter/kernels/"

	assert.Equal(t, []string{
		"COPY build/logos/deno/logo-*.png /opt/conda/share/jupyter/kernels/deno/",
		"COPY build/logos/ocaml/logo-*.png /opt/conda/share/jupyter/kernels/ocaml/",
	}, g.PackagingCommands())
}

func TestGenerator_ContextPath(t *testing.T) {
	ctx := t.TempDir()

	src, err := ContextPath(ctx, filepath.Join(ctx, "build", "logos"))
	require.NoError(t, err)
	assert.Equal(t, "build/logos", src)

	src, err = ContextPath(".", DefaultOutputDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, src)

	src, err = ContextPath(ctx, ctx)
	require.NoError(t, err)
	assert.Equal(t, ".", src)

	_, err = ContextPath(filepath.Join(ctx, "docker"), filepath.Join(ctx, "logos"))
	assert.Error(t, err)

	_, err = ContextPath(ctx, filepath.Dir(ctx))
	assert.Error(t, err)
}

func TestGenerator_LogoFileName(t *testing.T) {
	assert.Equal(t, "logo-32x32.png", LogoFileName(SmallSize))
	assert.Equal(t, "logo-64x64.png", LogoFileName(LargeSize))
}
