package kernelogo

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Logo dimensions expected by Jupyter in a kernel spec directory.
const (
	SmallSize = 32
	LargeSize = 64
)

// Defaults used when generating the packaging commands.
const (
	DefaultOutputDir  = "kernel-logos"
	DefaultKernelsDir = "/usr/local/share/jupyter/kernels"
)

// LogoFileName returns the file name of a logo with the given size.
func LogoFileName(size int) string {
	return fmt.Sprintf("logo-%dx%d.png", size, size)
}

// Generator persists the logos of every table entry and
// produces the commands to package them into a container image.
type Generator struct {
	Renderer *Renderer
	// SourceDir is the logo directory as seen from the image build context.
	SourceDir string
	// KernelsDir is the directory holding the kernel specs inside the image.
	KernelsDir string
	// Progress receives a line for every processed kernel. Can be nil.
	Progress io.Writer
}

// NewGenerator returns a Generator with the default packaging paths.
func NewGenerator(r *Renderer) *Generator {
	return &Generator{
		Renderer:   r,
		SourceDir:  DefaultOutputDir,
		KernelsDir: DefaultKernelsDir,
	}
}

// SaveAll writes the small and the large logo of every kernel into
// <dir>/<id>/. Existing files are overwritten. The first I/O error aborts the run.
func (g *Generator) SaveAll(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create the output directory: %w", err)
	}

	for _, e := range g.Renderer.Table {
		kernelDir := filepath.Join(dir, e.ID)
		if err := os.MkdirAll(kernelDir, 0755); err != nil {
			return fmt.Errorf("unable to create the kernel directory: %w", err)
		}

		for _, size := range []int{SmallSize, LargeSize} {
			if err := g.save(e.ID, size, filepath.Join(kernelDir, LogoFileName(size))); err != nil {
				return err
			}
		}

		if g.Progress != nil {
			fmt.Fprintf(g.Progress, "Created logos for %s\n", e.ID)
		}
	}
	return nil
}

// save renders a single logo and encodes it as PNG.
func (g *Generator) save(id string, size int, dst string) error {
	img, err := g.Renderer.Render(id, size)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, dst); err != nil {
		return fmt.Errorf("unable to save the logo %s: %w", dst, err)
	}
	return nil
}

// ContextPath returns dir relative to the image build context,
// in the slash separated form expected by a Dockerfile COPY source.
// Directories outside of the build context are rejected.
func ContextPath(contextDir, dir string) (string, error) {
	absContext, err := filepath.Abs(contextDir)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absContext, absDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("the directory %s is outside of the build context %s", dir, contextDir)
	}
	return filepath.ToSlash(rel), nil
}

// PackagingCommands returns a Dockerfile COPY instruction for every kernel, in table order.
func (g *Generator) PackagingCommands() []string {
	cmds := make([]string, 0, len(g.Renderer.Table))
	for _, e := range g.Renderer.Table {
		src := path.Join(filepath.ToSlash(g.SourceDir), e.ID, "logo-*.png")
		dst := path.Join(g.KernelsDir, e.ID) + "/"
		cmds = append(cmds, fmt.Sprintf("COPY %s %s", src, dst))
	}
	return cmds
}

// WritePackagingCommands writes the packaging commands preceded by a comment header.
func (g *Generator) WritePackagingCommands(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "# Dockerfile commands to copy kernel logos:"); err != nil {
		return err
	}
	for _, cmd := range g.PackagingCommands() {
		if _, err := fmt.Fprintln(w, cmd); err != nil {
			return err
		}
	}
	return nil
}
