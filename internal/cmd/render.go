package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamilvitek/frix/internal/assets"
	"github.com/kamilvitek/frix/internal/components"
)

func newRenderCommand() *cobra.Command {
	var (
		out string
		dir string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the landing page as static HTML",
		Long: `Render the landing page.

By default the HTML is written to stdout. --out writes it to a file.
--dir exports a complete static site: index.html plus the static/ assets
the page links to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case dir != "":
				if err := exportSite(dir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported site to %s\n", dir)
				return nil
			case out != "":
				return renderFile(out)
			default:
				return components.Render(cmd.OutOrStdout())
			}
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the page to this file instead of stdout")
	cmd.Flags().StringVar(&dir, "dir", "", "export index.html and static assets into this directory")
	cmd.MarkFlagsMutuallyExclusive("out", "dir")

	return cmd
}

func renderFile(path string) error {
	body, err := components.RenderBytes()
	if err != nil {
		return fmt.Errorf("render landing page: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// exportSite writes index.html and the embedded assets under dir/static.
func exportSite(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := renderFile(filepath.Join(dir, "index.html")); err != nil {
		return err
	}

	static := assets.FS()
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, "static", filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyAsset(static, path, target)
	})
}

func copyAsset(fsys fs.FS, name, target string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy %s: %w", name, err)
	}
	return dst.Close()
}
