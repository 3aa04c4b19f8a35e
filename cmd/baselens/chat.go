package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/baselens/baselens/internal/ai"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask follow-up questions about features and browser support",
	Long: `Start an interactive chat session with the compatibility assistant.

The transcript is kept in memory for the session; ask about Baseline
status, fallbacks, or anything from a previous analysis. Type 'exit' or
press Ctrl+D to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := ai.New(ai.Config{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return err
		}
		return runChat(context.Background(), client)
	},
}

func runChat(ctx context.Context, client *ai.Client) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("baselens> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Println("Baseline compatibility assistant. Type 'exit' to quit.")
	fmt.Println()

	var history []ai.ChatMessage
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			fmt.Println("Goodbye!")
			return nil
		}

		reply, err := client.Chat(ctx, history, question)
		if err != nil {
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
			continue
		}

		fmt.Printf("\n%s\n\n", reply)
		history = append(history,
			ai.ChatMessage{Role: "user", Text: question},
			ai.ChatMessage{Role: "assistant", Text: reply},
		)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
