package main

import (
	"bufio"
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
	"github.com/skillet-ai/skillet/pkg/skills"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

// ChatOptions contains all options for the chat command
type ChatOptions struct {
	watchSkills bool
}

var chatOptions = &ChatOptions{}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session with Skillet",
	Long:  `Start an interactive chat session with Skillet through stdin.`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			fmt.Println("\n\033[1;33m[skillet]: Cancellation requested, shutting down...\033[0m")
			cancel()
		}()

		if err := chatUI(ctx, chatOptions); err != nil {
			presenter.Error(err, "Failed to start chat session")
			os.Exit(1)
		}
	},
}

func chatUI(ctx context.Context, options *ChatOptions) error {
	sess, err := newSession(ctx)
	if err != nil {
		return err
	}

	if options.watchSkills && sess.catalog != nil {
		watcher, err := skills.WatchCatalog(ctx, sess.catalog)
		if err != nil {
			return errors.Wrap(err, "failed to watch skill bundles")
		}
		defer watcher.Close()
	}

	presenter.Section("Skillet Chat")
	presenter.Info(fmt.Sprintf("Provider: %s | Model: %s", sess.config.Provider, sess.model))
	printSkillBanner(sess.catalog)
	presenter.Info("Type 'exit' or 'quit' to end the session")
	presenter.Separator()

	reader := bufio.NewReader(os.Stdin)
	var conversation []llmtypes.Message

	for {
		fmt.Print("\033[1;33m[user]: \033[0m")
		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				presenter.Success("Exiting chat mode. Goodbye!")
				return nil
			}
			presenter.Error(err, "Error reading input")
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" || input == "q" {
			printActivatedSkills(sess)
			presenter.Success("Exiting chat mode. Goodbye!")
			return nil
		}

		conversation = append(conversation, llmtypes.NewUserMessage(input))

		result, err := sess.agent.ProcessMessage(ctx, conversation)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			presenter.Error(err, "Failed to process message")
			continue
		}

		conversation = result.Conversation
		if result.Outcome == agent.Degraded {
			presenter.Warning("Reached the maximum number of reasoning rounds for this reply")
		}
		fmt.Printf("\033[1;36m[skillet]: \033[0m%s\n\n", result.Message.Content)
	}
}

func printSkillBanner(catalog *skills.Catalog) {
	if catalog == nil {
		presenter.Info("Skills: disabled")
		return
	}

	descriptors := catalog.Describe()
	if len(descriptors) == 0 {
		presenter.Info("Skills: none discovered")
		return
	}

	presenter.Info(fmt.Sprintf("Skills: %d discovered", len(descriptors)))
	for _, skill := range descriptors {
		presenter.Info(fmt.Sprintf("  - %s: %s", skill.Name, skill.Description))
	}
}

func printActivatedSkills(sess *session) {
	activated := sess.agent.ActivatedSkills()
	if len(activated) == 0 {
		return
	}
	presenter.Info(fmt.Sprintf("Activated skills this session: %s", strings.Join(activated, ", ")))
}

func init() {
	chatCmd.Flags().BoolVar(&chatOptions.watchSkills, "watch-skills", false, "Pick up edits to skill instructions and resources without restarting")
	rootCmd.AddCommand(withTracing(chatCmd))
}
