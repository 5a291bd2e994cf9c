package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"squire/internal/assistant"
	"squire/internal/config"
	"squire/internal/logging"
	"squire/internal/speech"
	"squire/internal/status"
)

// newAssistant wires the assistant with its console surfaces. The recognizer
// and presenter are optional; one-shot invocations pass neither.
func newAssistant(doc config.Document, logger logging.Logger, opts rootOptions, extra ...assistant.Option) *assistant.Assistant {
	speaker := speech.NewConsoleSpeaker(os.Stdout, logger)

	aOpts := append([]assistant.Option{
		assistant.WithConfigOptions(opts.configOptions()...),
	}, extra...)
	return assistant.New(doc, speaker, logger, aOpts...)
}

// runSession runs the interactive REPL alongside the assistant event loop
// until the user exits or a signal arrives.
func runSession(opts rootOptions) error {
	logger := logging.NewComponentLogger("squire")
	doc, err := config.Load(opts.configOptions()...)
	if err != nil {
		// An unreadable document is not fatal; start over in memory.
		logger.Error("load config, starting empty: %v", err)
		doc = config.Document{}
	}

	aOpts := []assistant.Option{assistant.WithPresenter(newTerminalPresenter(os.Stdout))}
	var recognizer *speech.ReaderRecognizer
	if opts.dictate {
		recognizer = speech.NewReaderRecognizer(os.Stdin)
		aOpts = append(aOpts, assistant.WithRecognizer(recognizer))
	}
	a := newAssistant(doc, logger, opts, aOpts...)

	client := status.NewClient(logger)
	poller := status.NewPoller(client, a.Credentials, a.PostStatus, logger)
	a.UseStatusWorker(poller.Run)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Run(ctx)
	})
	if opts.dictate {
		g.Go(func() error {
			defer cancel()
			return dictateLoop(ctx, a, recognizer)
		})
	} else {
		g.Go(func() error {
			defer cancel()
			return inputLoop(ctx, a, doc.HasCredentials())
		})
	}
	return g.Wait()
}

// inputLoop runs the readline REPL with history and arrow key support.
// Typed lines become utterances; a few session commands are handled locally.
func inputLoop(ctx context.Context, a *assistant.Assistant, hasCredentials bool) error {
	fmt.Println(bold("Squire " + Version))
	fmt.Println("Type a command and press Enter. Type 'exit' or 'quit' to quit.")
	if !hasCredentials {
		fmt.Println(gray("Game detection is off. Enable it with: steam <api-key> <steam-id>"))
	}
	fmt.Println()

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".squire-history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("squire> "),
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             readline.NewCancelableStdin(os.Stdin),
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Unblock Readline when a signal cancels the session.
	go func() {
		<-ctx.Done()
		_ = rl.Close()
	}()

	for {
		input, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(input) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		switch {
		case input == "":
			continue
		case input == "exit" || input == "quit" || input == "q":
			fmt.Println("Goodbye!")
			return nil
		case input == "help":
			printSessionHelp()
		case strings.HasPrefix(input, "steam "):
			fields := strings.Fields(input)
			if len(fields) != 3 {
				fmt.Println(yellow("Usage: steam <api-key> <steam-id>"))
				continue
			}
			a.SetCredentials(fields[1], fields[2])
		default:
			a.SubmitUtterance(input)
		}
	}
	return nil
}

func printSessionHelp() {
	fmt.Println(bold("Commands:"))
	fmt.Println("  remind me to <task> in <N> minutes   Timed reminder")
	fmt.Println("  remind me to <task>                  Resource or event reminder")
	fmt.Println("  list reminders                       Read back every reminder")
	fmt.Println("  clear reminder about <keyword>       Remove the first match")
	fmt.Println("  clear all                            Remove everything")
	fmt.Println("  steam <api-key> <steam-id>           Enable game detection")
	fmt.Println("  exit                                 Quit")
	fmt.Println()
}

// dictateLoop keeps one capture worker listening at a time. StartCapture
// refuses while a phrase is in flight, so the loop polls the guard instead
// of reading stdin itself.
func dictateLoop(ctx context.Context, a *assistant.Assistant, recognizer *speech.ReaderRecognizer) error {
	fmt.Println(bold("Squire " + Version))
	fmt.Println(gray("Dictation mode: each line is a phrase. Ctrl+D to quit."))
	fmt.Println()

	for {
		if recognizer.Exhausted() {
			return nil
		}
		a.StartCapture()
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(200 * time.Millisecond):
		}
	}
}
