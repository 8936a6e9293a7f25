package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/chartshape-go/pkg/chartshape"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/output"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/parser"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/render"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [input.xlsx]",
		Short: "Import the charts of a workbook into a chart package",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output package path (default: input name with .odg)")
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx|input.odg]",
		Short: "Describe the charts of a workbook or package as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	cmd.Flags().StringVar(&workbookPath, "workbook", "", "workbook holding the sheets a package refers to")
	return cmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [input.xlsx|input.odg]",
		Short: "Render one chart as an SVG or PNG image",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output image path (default: stdout)")
	cmd.Flags().IntVar(&shapeIndex, "index", 0, "index of the chart to render")
	cmd.Flags().StringVar(&workbookPath, "workbook", "", "workbook holding the sheets a package refers to")
	return cmd
}

// loaded holds the shapes read from one input file.
type loaded struct {
	name     string
	shapes   []*chartshape.Shape
	failures []*chartshape.LoadError
	closeFn  func()
}

func (l *loaded) Close() {
	if l.closeFn != nil {
		l.closeFn()
	}
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func chartOptions(cmd *cobra.Command) (chartshape.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return opts, err
	}
	stderr := cmd.ErrOrStderr()
	opts.Interaction.Reporter = chartshape.ReporterFunc(func(err error) {
		_, _ = fmt.Fprintf(stderr, "warning: %v\n", err)
	})
	return opts, nil
}

// load reads a workbook or a chart package. Packages resolve their sheet
// ranges against the --workbook file when given.
func load(path string, opts chartshape.Options) (*loaded, error) {
	if isWorkbook(path) {
		book, err := chartshape.Import(path, opts)
		if err != nil {
			return nil, err
		}
		return &loaded{
			name:     book.Name,
			shapes:   book.Shapes,
			failures: book.Errors,
			closeFn:  func() { _ = book.Close() },
		}, nil
	}

	var wb *parser.Workbook
	if workbookPath != "" {
		var err error
		wb, err = parser.OpenWorkbook(workbookPath)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		opts.Sheets = wb
	}
	shapes, failures, err := chartshape.OpenPackage(path, opts)
	if err != nil {
		if wb != nil {
			_ = wb.Close()
		}
		return nil, err
	}
	return &loaded{
		name:     filepath.Base(path),
		shapes:   shapes,
		failures: failures,
		closeFn: func() {
			for _, s := range shapes {
				s.Close()
			}
			if wb != nil {
				_ = wb.Close()
			}
		},
	}, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	opts, err := chartOptions(cmd)
	if err != nil {
		return err
	}

	book, err := chartshape.Import(inputPath, opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	defer book.Close()

	target := outputPath
	if target == "" {
		target = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".odg"
	}
	if err := chartshape.SavePackage(target, book.Shapes...); err != nil {
		return fmt.Errorf("failed to write package: %w", err)
	}
	log.Info().Str("package", target).Int("charts", len(book.Shapes)).Int("errors", len(book.Errors)).Msg("package written")
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts, err := chartOptions(cmd)
	if err != nil {
		return err
	}
	src, err := load(args[0], opts)
	if err != nil {
		return err
	}
	defer src.Close()

	doc := chartshape.NewDocument(src.name, src.shapes, src.failures, opts.ShouldIncludeTables())
	return writeOutput(cmd, func(w io.Writer) error {
		return output.WriteDocument(w, &doc, pretty)
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := chartOptions(cmd)
	if err != nil {
		return err
	}
	ropts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}
	if f, ok := render.ParseFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(outputPath)), ".")); ok {
		ropts.Format = f
	}

	src, err := load(args[0], opts)
	if err != nil {
		return err
	}
	defer src.Close()

	if shapeIndex < 0 || shapeIndex >= len(src.shapes) {
		return fmt.Errorf("chart index %d out of range (%d charts)", shapeIndex, len(src.shapes))
	}
	return writeOutput(cmd, func(w io.Writer) error {
		return render.Render(src.shapes[shapeIndex], w, ropts)
	})
}

// writeOutput runs write against the --output file or stdout.
func writeOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	if outputPath == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
