package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rufio-sh/rufio-hooks/internal/checks"
	"github.com/rufio-sh/rufio-hooks/internal/config"
	"github.com/rufio-sh/rufio-hooks/internal/hooks"
	"github.com/rufio-sh/rufio-hooks/internal/logging"
	"github.com/rufio-sh/rufio-hooks/internal/zellij"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rufio-hooks",
		Short: "Post-edit policy checks for coding-agent sessions",
		Long:  `A CLI tool that handles coding-agent hook events. On the Stop event it verifies that the commands required by the nearest rufio-hooks.yaml ran after the session's last relevant file edit, and blocks the agent from stopping until they have.`,
	}

	rootCmd.AddCommand(newHandleCmd())
	rootCmd.AddCommand(newPresetsCmd())

	return rootCmd
}

func newHandleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handle",
		Short: "Handle a hook event from stdin",
		Long:  `Reads one hook event from stdin as JSON and dispatches it. A Stop event whose checks fail writes a block decision to stdout; every other outcome produces no output. Always exits 0 for well-formed input so the agent session is never wedged by the hook itself.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := hooks.ParseHookInput(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to parse hook input: %w", err)
			}

			logger := logging.SessionLogger(input.SessionID)

			handler := hooks.NewHandler(
				hooks.NewGitHelper(logger),
				zellij.NewClient(logger),
				checks.NewEngine(logger),
				logger,
				cmd.OutOrStdout(),
			)
			if err := handler.Handle(input); err != nil {
				return fmt.Errorf("failed to handle %s event: %w", input.HookEventName, err)
			}
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Long:  `Prints the names of the built-in presets available to the 'presets' list of a rufio-hooks.yaml, one per line.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.BuiltinPresetNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
