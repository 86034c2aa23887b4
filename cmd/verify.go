package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jpeter96/langInterpreterTranslator/config"
	"github.com/jpeter96/langInterpreterTranslator/eval"
	"github.com/jpeter96/langInterpreterTranslator/lang"
	"github.com/jpeter96/langInterpreterTranslator/verify"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type palette struct {
	ok, fail, reset string
}

// colors decides whether verify output is colored. NO_COLOR, --no-color and
// the config file can disable it; "auto" colors only when stderr is a
// terminal.
func colors(cmd *cli.Command, cfg *config.Config) palette {
	on := true
	switch {
	case cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "":
		on = false
	case cfg.Color == config.ColorNever:
		on = false
	case cfg.Color == config.ColorAlways:
		on = true
	default:
		f, ok := stderr(cmd).(*os.File)
		on = ok && term.IsTerminal(int(f.Fd()))
	}
	if !on {
		return palette{}
	}
	return palette{ok: "\033[32m", fail: "\033[31m", reset: "\033[0m"}
}

// collectPrograms expands directories into the program files they contain.
func collectPrograms(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", target, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := lang.FromPath(e.Name()); err == nil {
				files = append(files, filepath.Join(target, e.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func verifyAction(ctx context.Context, cmd *cli.Command) error {
	targets := cmd.Args().Slice()
	if len(targets) == 0 {
		targets = []string{"."}
	}
	files, err := collectPrograms(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .loop, .while or .goto files found")
	}

	opts, cfg, err := evalOptions(cmd)
	if err != nil {
		return err
	}
	// Traces from concurrent runs would interleave.
	opts.Verbose = false

	var l lang.Lang
	if s := cmd.String("lang"); s != "" {
		if l, err = lang.ParseLang(s); err != nil {
			return err
		}
	}

	jobs := int(cmd.Int("jobs"))
	if jobs < 1 {
		jobs = 1
	}

	reports := verifyFiles(files, l, opts, jobs)

	pal := colors(cmd, cfg)
	out := stderr(cmd)
	failed, routes, routesFailed := 0, 0, 0
	for _, r := range reports {
		printReport(out, r, pal)
		routes += len(r.Outcomes)
		routesFailed += r.Failed()
		if r.Err != nil && len(r.Outcomes) == 0 || !r.OK() {
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(out, "\n%d programs, %d routes, %s%d routes failed, %d programs failed%s\n",
			len(reports), routes, pal.fail, routesFailed, failed, pal.reset)
		return fmt.Errorf("%d of %d programs failed verification", failed, len(reports))
	}
	fmt.Fprintf(out, "\n%d programs, %d routes, %s%d passed%s\n",
		len(reports), routes, pal.ok, routes, pal.reset)
	return nil
}

// verifyFiles verifies every file on a pool of jobs workers and returns the
// reports in input order.
func verifyFiles(files []string, l lang.Lang, opts eval.Options, jobs int) []*verify.Report {
	reports := make([]*verify.Report, len(files))
	work := make(chan int, len(files))
	for i := range files {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for range min(jobs, len(files)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				reports[i] = verifyFile(files[i], l, opts)
			}
		}()
	}
	wg.Wait()
	return reports
}

func verifyFile(path string, l lang.Lang, opts eval.Options) *verify.Report {
	src, err := lang.ParseFile(path, l)
	if err != nil {
		return &verify.Report{Name: path, Err: err}
	}
	return verify.Program(path, src, opts)
}

func printReport(w io.Writer, r *verify.Report, pal palette) {
	fmt.Fprintf(w, "=== %s ===\n", r.Name)
	if r.Err != nil && len(r.Outcomes) == 0 {
		fmt.Fprintf(w, "  %sFAIL%s %v\n", pal.fail, pal.reset, r.Err)
		return
	}
	for _, o := range r.Outcomes {
		if o.OK() {
			fmt.Fprintf(w, "  %sPASS%s %s\n", pal.ok, pal.reset, o.Route)
			continue
		}
		fmt.Fprintf(w, "  %sFAIL%s %s\n", pal.fail, pal.reset, o.Route)
		for _, d := range o.Diffs {
			fmt.Fprintf(w, "       %s\n", d)
		}
	}
}
