package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/btmgmt/btmgmt-go/pkg/registry"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively",
		Long: `Start an interactive session that keeps one management socket open.

Every btmgmt command can be typed at the prompt. "select <index>" changes
the default controller, "exit" leaves the shell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.inShell {
				return errors.New("already in a shell")
			}
			return runShell(cmd.Context(), a)
		},
	}
}

func runShell(ctx context.Context, a *app) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt(a.controllerIndex()),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    shellCompleter(a),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	a.inShell = true
	defer func() { a.inShell = false }()

	// Route logs through readline so they do not garble the prompt.
	a.stderr = rl.Stderr()
	a.logger = nil
	if err := a.setupLogging(); err != nil {
		return err
	}
	c, err := a.open(ctx)
	if err != nil {
		return err
	}
	c.Registry().OnControllerAdded(func(s registry.ControllerState) {
		fmt.Fprintf(rl.Stdout(), "%s added\n", s.Index)
	})
	c.Registry().OnControllerRemoved(func(idx wire.ControllerIndex) {
		fmt.Fprintf(rl.Stdout(), "%s removed\n", idx)
	})

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "Error: %s\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "exit", "quit", "q":
			return nil
		case "select":
			if err := shellSelect(a, args[1:]); err != nil {
				fmt.Fprintf(rl.Stderr(), "Error: %s\n", err)
				continue
			}
			rl.SetPrompt(shellPrompt(a.controllerIndex()))
			continue
		}

		if err := runLine(ctx, a, args, rl.Stdout(), rl.Stderr()); err != nil {
			fmt.Fprintf(rl.Stderr(), "Error: %s\n", err)
		}
	}
}

// runLine executes one shell line as a btmgmt command on a fresh command
// tree sharing a.
func runLine(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func shellSelect(a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: select <index>")
	}
	arg := strings.TrimPrefix(args[0], "hci")
	n, err := strconv.ParseUint(arg, 10, 16)
	if err != nil || wire.ControllerIndex(n).IsGlobal() {
		return fmt.Errorf("invalid controller index %q", args[0])
	}
	a.index = uint16(n)
	return nil
}

func shellPrompt(idx wire.ControllerIndex) string {
	return "[" + idx.String() + "]# "
}

func shellCompleter(a *app) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, sub := range newRootCmd(a).Commands() {
		if sub.Hidden || sub.Name() == "shell" {
			continue
		}
		var args []readline.PrefixCompleterInterface
		for _, v := range sub.ValidArgs {
			args = append(args, readline.PcItem(v))
		}
		items = append(items, readline.PcItem(sub.Name(), args...))
	}
	items = append(items, readline.PcItem("select"), readline.PcItem("exit"), readline.PcItem("help"))
	return readline.NewPrefixCompleter(items...)
}

// splitArgs splits a shell line on spaces. Double quotes group words.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inQuote, inWord := false, false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case (r == ' ' || r == '\t') && !inQuote:
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
