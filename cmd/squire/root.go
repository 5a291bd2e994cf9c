package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"squire/internal/config"
	"squire/internal/logging"
	"squire/internal/reminder"
)

// Version is stamped into the version command output.
const Version = "0.3.0"

// Color definitions shared across the command surface.
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// isTTY checks if the current environment has a TTY available
func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

type rootOptions struct {
	configPath string
	dictate    bool
}

func (o rootOptions) configOptions() []config.Option {
	if o.configPath == "" {
		return nil
	}
	return []config.Option{config.WithPath(o.configPath)}
}

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "squire",
		Short: "Hands-free reminder assistant for strategy gamers",
		Long: fmt.Sprintf(`%s

Squire keeps track of in-game reminders so you can stay in the match.
Speak or type commands like "remind me to build a forge in 15 minutes"
and it calls them back when they come due. With Steam credentials set
it also watches what you are playing.

%s
  squire                                   # Interactive session
  squire "remind me to scout in 5 minutes" # One-shot command
  squire reminders                         # List saved reminders
  squire config steam <api-key> <steam-id> # Enable game detection`,
			bold("Squire "+Version), bold("EXAMPLES:")),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runOnce(*opts, strings.Join(args, " "))
			}
			if !isTTY() {
				// No TTY (CI or a pipe); an interactive session cannot start.
				return cmd.Help()
			}
			return runSession(*opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (default ~/"+config.DefaultFileName+")")
	rootCmd.Flags().BoolVar(&opts.dictate, "dictate", false, "Read commands phrase-by-phrase from stdin instead of the prompt")

	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newRemindersCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// runOnce applies a single utterance and exits. The event loop never starts,
// so the assistant is driven synchronously.
func runOnce(opts rootOptions, utterance string) error {
	logger := logging.NewComponentLogger("squire")
	doc, err := config.Load(opts.configOptions()...)
	if err != nil {
		logger.Error("load config, starting empty: %v", err)
		doc = config.Document{}
	}

	a := newAssistant(doc, logger, opts)
	a.Process(utterance)
	return nil
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(opts.configOptions()...)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", bold("Steam API key:"), maskKey(doc.SteamAPIKey))
			fmt.Printf("%s %s\n", bold("Steam ID:"), valueOrUnset(doc.SteamID))
			fmt.Printf("%s %d\n", bold("Saved reminders:"), len(doc.Reminders))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "steam <api-key> <steam-id>",
		Short: "Set Steam credentials for game detection",
		Long: `Set the Steam Web API key and 64-bit Steam ID used to poll which
game is currently running. Get a key at steamcommunity.com/dev/apikey.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(opts.configOptions()...)
			if err != nil {
				return err
			}
			doc.SteamAPIKey = args[0]
			doc.SteamID = args[1]

			path, err := config.Save(doc, opts.configOptions()...)
			if err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			if err := config.Verify(doc, opts.configOptions()...); err != nil {
				return fmt.Errorf("verify saved config: %w", err)
			}
			fmt.Printf("%s %s\n", green("Steam settings saved to"), path)
			return nil
		},
	})

	return cmd
}

func newRemindersCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "List saved reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(opts.configOptions()...)
			if err != nil {
				return err
			}

			store := reminder.NewStore()
			for _, restoreErr := range store.Restore(doc.Reminders) {
				fmt.Fprintf(os.Stderr, "%s %v\n", yellow("skipping:"), restoreErr)
			}

			snapshot := store.Snapshot()
			if len(snapshot) == 0 {
				fmt.Println(gray("No saved reminders."))
				return nil
			}
			now := time.Now()
			for i, r := range snapshot {
				fmt.Println(r.DisplayLine(i+1, now))
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("squire %s\n", Version)
		},
	}
}

func maskKey(key string) string {
	if key == "" {
		return gray("(not set)")
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func valueOrUnset(value string) string {
	if value == "" {
		return gray("(not set)")
	}
	return value
}
