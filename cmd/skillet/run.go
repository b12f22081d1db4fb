package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/agent"
	"github.com/skillet-ai/skillet/pkg/presenter"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Execute a one-shot query with Skillet",
	Long:  `Execute a one-shot query with Skillet and print the final reply.`,
	Args:  cobra.MinimumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		// Create a cancellable context that listens for signals
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			fmt.Println("\n\033[1;33m[skillet]: Cancellation requested, shutting down...\033[0m")
			cancel()
		}()

		query, err := readQuery(args)
		if err != nil {
			presenter.Error(err, "Failed to read query")
			os.Exit(1)
		}

		sess, err := newSession(ctx)
		if err != nil {
			presenter.Error(err, "Failed to start agent")
			os.Exit(1)
		}

		// Print the user query
		fmt.Printf("\033[1;33m[user]: \033[0m%s\n", query)

		result, err := sess.agent.ProcessMessage(ctx, []llmtypes.Message{llmtypes.NewUserMessage(query)})
		if err != nil {
			presenter.Error(err, "Failed to process query")
			os.Exit(1)
		}

		if result.Outcome == agent.Degraded {
			presenter.Warning("Reached the maximum number of reasoning rounds before a final reply")
		}
		fmt.Println(result.Message.Content)
	},
}

// readQuery assembles the query from arguments and piped stdin. Piped
// content follows the argument text, matching shell usage like
// `cat notes.md | skillet run "summarize this"`.
func readQuery(args []string) (string, error) {
	stat, _ := os.Stdin.Stat()
	isPipe := (stat.Mode() & os.ModeCharDevice) == 0

	if !isPipe {
		if len(args) == 0 {
			return "", errors.New("no query provided")
		}
		return strings.Join(args, " "), nil
	}

	stdinBytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read from stdin")
	}

	stdinContent := string(stdinBytes)
	if len(args) > 0 {
		return strings.Join(args, " ") + "\n" + stdinContent, nil
	}
	return stdinContent, nil
}

func init() {
	rootCmd.AddCommand(withTracing(runCmd))
}
