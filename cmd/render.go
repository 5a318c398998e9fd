package cmd

import (
	"fmt"
	stdhtml "html"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/beacon/internal/dom"
	"github.com/xkilldash9x/beacon/internal/observability"
	"github.com/xkilldash9x/beacon/internal/render"
	"github.com/xkilldash9x/beacon/internal/report"
)

// newRenderCmd creates the `render` command.
func newRenderCmd() *cobra.Command {
	var (
		omitTopbar bool
		outputDir  string
		toStdout   bool
	)

	renderCmd := &cobra.Command{
		Use:   "render <report.json> [more.json...]",
		Short: "Render audit result JSON files into standalone HTML reports.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toStdout && len(args) != 1 {
				return fmt.Errorf("--stdout requires exactly one input file")
			}
			if outputDir == "" && cfg != nil {
				outputDir = cfg.Render.OutputDir
			}
			if !cmd.Flags().Changed("omit-topbar") && cfg != nil {
				omitTopbar = cfg.Render.OmitTopbar
			}

			logger := observability.GetLogger()
			renderer := render.New(logger)
			opts := render.Options{OmitTopbar: omitTopbar, Mode: render.CreateRoot}

			// Each input renders independently; the engine itself is
			// synchronous, so fan out across files only.
			var g errgroup.Group
			g.SetLimit(4)
			for _, path := range args {
				g.Go(func() error {
					out, err := renderFile(renderer, path, outputDir, toStdout, opts)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					if !toStdout {
						logger.Info("Rendered report",
							zap.String("input", path),
							zap.String("output", out))
					}
					return nil
				})
			}
			return g.Wait()
		},
	}

	renderCmd.Flags().BoolVar(&omitTopbar, "omit-topbar", false, "suppress the topbar section")
	renderCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for rendered files (default: alongside input)")
	renderCmd.Flags().BoolVar(&toStdout, "stdout", false, "write the rendered HTML to stdout (single input only)")
	return renderCmd
}

// renderFile renders one LHR file and returns the output path.
func renderFile(renderer *render.Renderer, path, outputDir string, toStdout bool, opts render.Options) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	lhr, err := report.Normalize(raw)
	if err != nil {
		return "", err
	}

	result, err := renderer.RenderReport(lhr, nil, opts)
	if err != nil {
		return "", err
	}

	fragment, err := dom.NewDOM().Serialize(result.Root)
	if err != nil {
		return "", err
	}
	page := wrapDocument(fragment, "Lighthouse Report: "+lhr.FinalURL)

	if toStdout {
		_, err = os.Stdout.Write(page)
		return "", err
	}

	out := outputPath(path, outputDir)
	if err := os.WriteFile(out, page, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// outputPath derives <input>.report.html, optionally relocated to dir.
func outputPath(input, dir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".report.html"
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

// wrapDocument wraps the detached fragment in a minimal HTML document. The
// engine hands back a bare fragment; the document chrome is a CLI concern.
func wrapDocument(fragment []byte, title string) []byte {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>" + stdhtml.EscapeString(title) + "</title>\n</head>\n<body>\n")
	b.Write(fragment)
	b.WriteString("\n</body>\n</html>\n")
	return []byte(b.String())
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
}
