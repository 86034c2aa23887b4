package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jpeter96/langInterpreterTranslator/config"
	"github.com/jpeter96/langInterpreterTranslator/eval"
	"github.com/jpeter96/langInterpreterTranslator/lang"
	"github.com/jpeter96/langInterpreterTranslator/scanner"
	"github.com/jpeter96/langInterpreterTranslator/translate"
	"github.com/urfave/cli/v3"
	"tlog.app/go/errors"
)

// Execute runs the lwg CLI with the given version string.
func Execute(version string) {
	if err := New(version).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// New builds the lwg command tree.
func New(version string) *cli.Command {
	langFlag := &cli.StringFlag{
		Name:    "lang",
		Aliases: []string{"l"},
		Usage:   "Source language (loop, while, goto); default from file extension",
	}
	varFlag := &cli.StringSliceFlag{
		Name:  "var",
		Usage: "Pin an initial variable value, e.g. --var x0=5 (repeatable)",
	}
	maxStepsFlag := &cli.IntFlag{
		Name:  "max-steps",
		Usage: "Safety ceiling for loop iterations and GOTO steps (0 = default)",
	}

	return &cli.Command{
		Name:                   "lwg",
		Usage:                  "Evaluate and translate LOOP, WHILE and GOTO programs",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file (default $" + config.EnvVar + ")",
			},
		},
		// Allow `lwg prog.loop` as shorthand for `lwg run prog.loop`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				if _, err := lang.FromPath(cmd.Args().First()); err == nil {
					return runAction(ctx, cmd)
				}
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Evaluate a program and print its final variables",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					langFlag, varFlag, maxStepsFlag,
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Trace every executed statement to stderr",
					},
					&cli.StringFlag{
						Name:  "via",
						Usage: "Translate to this language (while, goto) before evaluating",
					},
				},
				Action: runAction,
			},
			{
				Name:      "translate",
				Usage:     "Translate a program and print the result",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					langFlag,
					&cli.StringFlag{
						Name:     "to",
						Aliases:  []string{"t"},
						Usage:    "Target language (while, goto)",
						Required: true,
					},
				},
				Action: translateAction,
			},
			{
				Name:      "check",
				Usage:     "Parse a program and run its static checks",
				ArgsUsage: "<file>",
				Flags:     []cli.Flag{langFlag},
				Action:    checkAction,
			},
			{
				Name:      "fmt",
				Usage:     "Print a program in canonical form",
				ArgsUsage: "<file>",
				Flags:     []cli.Flag{langFlag},
				Action:    fmtAction,
			},
			{
				Name:      "verify",
				Usage:     "Check that every translation preserves a program's results",
				ArgsUsage: "[file | directory]...",
				Flags: []cli.Flag{
					langFlag, varFlag, maxStepsFlag,
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Programs verified in parallel",
						Value:   1,
					},
					&cli.BoolFlag{
						Name:    "no-color",
						Aliases: []string{"C"},
						Usage:   "Disable ANSI color output",
					},
				},
				Action: verifyAction,
			},
		},
	}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// loadSource parses the single file argument of a command.
func loadSource(cmd *cli.Command, usage string) (*lang.Source, error) {
	if cmd.NArg() < 1 {
		return nil, fmt.Errorf("usage: lwg %s", usage)
	}
	var l lang.Lang
	if s := cmd.String("lang"); s != "" {
		var err error
		if l, err = lang.ParseLang(s); err != nil {
			return nil, err
		}
	}
	return lang.ParseFile(cmd.Args().First(), l)
}

// evalOptions merges the config file with command-line flags.
func evalOptions(cmd *cli.Command) (eval.Options, *config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return eval.Options{}, nil, err
	}
	opts := eval.Options{
		Vars:     eval.Vars{},
		Verbose:  cfg.Verbose,
		MaxSteps: cfg.MaxSteps,
	}
	for name, v := range cfg.Vars {
		opts.Vars[name] = v
	}
	flagVars, err := parseVars(cmd.StringSlice("var"))
	if err != nil {
		return eval.Options{}, nil, err
	}
	for name, v := range flagVars {
		opts.Vars[name] = v
	}
	if cmd.IsSet("verbose") {
		opts.Verbose = cmd.Bool("verbose")
	}
	if n := cmd.Int("max-steps"); n > 0 {
		opts.MaxSteps = uint64(n)
	} else if n < 0 {
		return eval.Options{}, nil, fmt.Errorf("--max-steps must not be negative")
	}
	return opts, cfg, nil
}

// parseVars parses name=value pairs.
func parseVars(pairs []string) (eval.Vars, error) {
	vars := eval.Vars{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || !scanner.IsIdent(name) {
			return nil, fmt.Errorf("invalid --var %q (want name=value)", pair)
		}
		v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --var %q: value must be a natural number", pair)
		}
		vars[name] = v
	}
	return vars, nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	src, err := loadSource(cmd, "run [--var name=value]... <file>")
	if err != nil {
		return err
	}
	opts, _, err := evalOptions(cmd)
	if err != nil {
		return err
	}
	if via := cmd.String("via"); via != "" {
		to, err := lang.ParseLang(via)
		if err != nil {
			return err
		}
		if err := src.Check(); err != nil {
			return err
		}
		if src.Lang == lang.Goto && to == lang.While {
			opts.MaxSteps = translate.DispatchLimit(src.Goto, opts.StepLimit())
		}
		reserved := lang.SortedNames(opts.Vars)
		if src, err = src.Translate(to, reserved...); err != nil {
			return err
		}
	}
	vars, err := src.Eval(opts)
	if err != nil {
		return errors.Wrap(err, "%s", cmd.Args().First())
	}
	w := stdout(cmd)
	for _, name := range lang.SortedNames(vars) {
		fmt.Fprintf(w, "%s = %d\n", name, vars[name])
	}
	return nil
}

func translateAction(ctx context.Context, cmd *cli.Command) error {
	src, err := loadSource(cmd, "translate --to <while|goto> <file>")
	if err != nil {
		return err
	}
	to, err := lang.ParseLang(cmd.String("to"))
	if err != nil {
		return err
	}
	if err := src.Check(); err != nil {
		return err
	}
	out, err := src.Translate(to)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout(cmd), out.Format())
	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	src, err := loadSource(cmd, "check <file>")
	if err != nil {
		return err
	}
	if err := src.Check(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Args().First(), err)
	}
	fmt.Fprintf(stdout(cmd), "%s: ok (%s)\n", cmd.Args().First(), src.Lang)
	return nil
}

func fmtAction(ctx context.Context, cmd *cli.Command) error {
	src, err := loadSource(cmd, "fmt <file>")
	if err != nil {
		return err
	}
	fmt.Fprint(stdout(cmd), src.Format())
	return nil
}
