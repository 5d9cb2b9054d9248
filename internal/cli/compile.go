package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	output  string  // output file (single input) or directory (several inputs); "-" writes to stdout
	format  string  // svg, png or pdf
	scale   float64 // png zoom factor
	noCache bool    // skip the local artifact cache
	refresh bool    // recompile even when cached
	jobs    int     // concurrent compilations
	pick    string  // directory to choose a spec from interactively
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	opts := compileOpts{format: pipeline.FormatSVG, scale: 1, jobs: defaultJobs}

	cmd := &cobra.Command{
		Use:   "compile [spec.json...]",
		Short: "Compile chart specs to SVG, PNG or PDF",
		Long: `Compile one or more JSON chart specifications.

Each input is written next to itself with the format's extension unless
--output is given. With several inputs --output names a directory.`,
		Example: `  chartkit compile sales.json
  chartkit compile -f png --scale 2 -o out/ charts/*.json
  chartkit compile --pick charts/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pick != "" {
				path, err := pickSpec(opts.pick)
				if err != nil {
					return err
				}
				if path == "" {
					return nil
				}
				args = append(args, path)
			}
			if len(args) == 0 {
				return fmt.Errorf("no input files (pass spec files or --pick DIR)")
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return runCompile(ctx, c.newRunner(opts.noCache), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory for several inputs")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, pdf")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png zoom factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompile even when cached")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "concurrent compilations")
	cmd.Flags().StringVar(&opts.pick, "pick", "", "choose a spec interactively from `DIR`")

	return cmd
}

func runCompile(ctx context.Context, runner *pipeline.Runner, inputs []string, opts compileOpts) error {
	logger := loggerFromContext(ctx)
	if err := errors.ValidateFormat(opts.format); err != nil {
		return err
	}
	if opts.scale != 1 && opts.format != pipeline.FormatPNG {
		printWarning("--scale only applies to png output")
	}
	if opts.output == "-" && len(inputs) > 1 {
		return fmt.Errorf("--output - needs a single input")
	}

	jobs, failures := loadJobs(inputs)

	prog := newProgress(logger)
	results, err := runner.CompileAll(ctx, jobs, pipeline.Options{
		Format:  opts.format,
		Scale:   opts.scale,
		Refresh: opts.refresh,
	}, opts.jobs)
	if err != nil {
		return err
	}
	results = append(failures, results...)

	failed, cached := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			printError("%s: %s", res.Name, errors.UserMessage(res.Err))
			continue
		}
		if res.Artifact.CacheHit {
			cached++
		}
		out := outputPath(res.Name, opts.output, opts.format, len(inputs) > 1)
		if err := writeOutput(out, res.Artifact.Data); err != nil {
			return err
		}
		if out != "-" {
			printFile(out)
		}
	}
	prog.done(fmt.Sprintf("Compiled %d of %d charts", len(results)-failed, len(results)))

	if failed > 0 {
		return fmt.Errorf("%d of %d charts failed", failed, len(results))
	}
	if opts.output == "-" {
		return nil
	}
	printStats(len(results), cached)
	if len(inputs) == 1 {
		printNextStep("Publish it", fmt.Sprintf("%s publish %s", appName, inputs[0]))
	}
	return nil
}

// loadJobs reads and parses every input. Inputs that cannot be read or
// parsed come back as failed results so the rest of the batch still runs.
func loadJobs(inputs []string) ([]pipeline.Job, []pipeline.Result) {
	var (
		jobs     []pipeline.Job
		failures []pipeline.Result
	)
	for _, path := range inputs {
		spec, err := readSpec(path)
		if err != nil {
			failures = append(failures, pipeline.Result{Name: path, Err: err})
			continue
		}
		jobs = append(jobs, pipeline.Job{Name: path, Spec: spec})
	}
	return jobs, failures
}

func readSpec(path string) (*chart.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return chart.Parse(data)
}

// outputPath derives where the artifact compiled from input is written.
func outputPath(input, output, format string, multi bool) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "." + format
	switch {
	case output == "":
		return filepath.Join(filepath.Dir(input), base)
	case multi:
		return filepath.Join(output, base)
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// pickSpec lets the user choose a spec file from dir. It returns "" when the
// user quits without choosing.
func pickSpec(dir string) (string, error) {
	entries, err := scanSpecs(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no .json files in %s", dir)
	}
	final, err := tea.NewProgram(NewSpecListModel(entries)).Run()
	if err != nil {
		return "", err
	}
	m := final.(SpecListModel)
	if m.Selected == nil {
		return "", nil
	}
	return m.Selected.Path, nil
}
