// Command skit runs, transpiles, and inspects scripts: run a file, start a
// REPL, generate Go source, or execute every script block in a markdown
// deck.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"skit/codegen"
	"skit/deck"
	"skit/engine"
	"skit/parser"
	"skit/stdlib"
	"skit/types"
)

func main() {
	root := &cobra.Command{
		Use:           "skit",
		Short:         "An embeddable scripting engine for interactive presentations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), replCmd(), genCmd(), deckCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "skit:", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "run <file.sk>",
		Short: "Run a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			eng := newEngine(seed, cmd.Flags().Changed("seed"))
			s, err := eng.LoadScript(args[0], string(src))
			if err != nil {
				return err
			}
			if err := s.Init(); err != nil {
				return err
			}
			return s.Render()
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "fix the global random seed (defaults to the clock)")
	return cmd
}

func replCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(newEngine(seed, cmd.Flags().Changed("seed")))
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "fix the global random seed (defaults to the clock)")
	return cmd
}

// repl reads statements with line editing. A line ending in a colon opens a
// multi-line buffer that an empty line submits.
func repl(eng *engine.Engine) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("skit repl; empty line runs a pending block, Ctrl-D exits")
	var buf []string
	for {
		prompt := ">> "
		if len(buf) > 0 {
			prompt = ".. "
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				buf = nil
				continue
			}
			fmt.Println()
			return nil
		}

		if len(buf) > 0 {
			if strings.TrimSpace(input) == "" {
				submit(eng, line, strings.Join(buf, "\n"))
				buf = nil
			} else {
				buf = append(buf, input)
			}
			continue
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		if strings.HasSuffix(strings.TrimRight(input, " \t"), ":") {
			buf = append(buf, input)
			continue
		}
		submit(eng, line, input)
	}
}

func submit(eng *engine.Engine, line *liner.State, src string) {
	line.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	val, err := eng.Eval(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	if val != nil && val.Kind() != types.KindNil {
		fmt.Println(types.Format(val))
	}
}

func genCmd() *cobra.Command {
	var pkg string
	cmd := &cobra.Command{
		Use:   "gen <file.sk>",
		Short: "Transpile a script to Go source on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := parser.ParseSource(string(src))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			out, err := codegen.Generate(prog, &codegen.Context{
				Package: pkg,
				Plugins: stdlib.Plugins(os.Stdout, 0),
			})
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "main", "package name for the generated source")
	return cmd
}

func deckCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "deck <file.md>",
		Short: "Run every skit code block in a markdown deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			blocks := deck.ExtractBlocks(doc)
			if len(blocks) == 0 {
				return fmt.Errorf("%s: no skit blocks found", args[0])
			}
			eng := newEngine(seed, cmd.Flags().Changed("seed"))
			for i, block := range blocks {
				name := fmt.Sprintf("block %d", i+1)
				if _, err := eng.LoadScript(name, block.Source); err != nil {
					return fmt.Errorf("%s:%d: %w", args[0], documentLine(block, err), unwrapScript(err))
				}
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "fix the global random seed (defaults to the clock)")
	return cmd
}

// documentLine translates a script-relative error line back to document
// coordinates using the block's offset.
func documentLine(block deck.Block, err error) int {
	line := 1
	var serr *types.ScriptError
	var perr *parser.ParseError
	switch {
	case errors.As(err, &serr) && serr.Line > 0:
		line = serr.Line
	case errors.As(err, &perr) && perr.Line > 0:
		line = perr.Line
	}
	return block.Line + line - 1
}

func unwrapScript(err error) error {
	var serr *types.ScriptError
	if errors.As(err, &serr) {
		return serr
	}
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return perr
	}
	return err
}

// newEngine builds an engine writing to stdout. fixed pins the global random
// stream to seed, so --seed 0 is honored; otherwise the clock seeds it.
func newEngine(seed int64, fixed bool) *engine.Engine {
	opts := []engine.Option{engine.WithOutput(os.Stdout)}
	if fixed {
		opts = append(opts, engine.WithSeed(seed))
	}
	return engine.New(opts...)
}
