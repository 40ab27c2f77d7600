package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizforge/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and test the LLM provider configuration",
}

var llmShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the provider configuration resolved from the environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				fmt.Println("No LLM provider configured.")
				fmt.Println()
				fmt.Println("Set QUIZFORGE_LLM_PROVIDER plus the matching API key, or export")
				fmt.Println("one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,")
				fmt.Println("OPENROUTER_API_KEY for automatic discovery.")
				return nil
			}
			cfg = discovered
			fmt.Println("(discovered from standard API key environment variables)")
		}

		fmt.Printf("Provider:  %s\n", cfg.Provider)
		switch cfg.Provider {
		case "anthropic":
			fmt.Printf("Model:     %s\n", cfg.Anthropic.Model)
		case "openai":
			fmt.Printf("Model:     %s\n", cfg.OpenAI.Model)
			if cfg.OpenAI.BaseURL != "" {
				fmt.Printf("Base URL:  %s\n", cfg.OpenAI.BaseURL)
			}
		case "gemini":
			fmt.Printf("Model:     %s\n", cfg.Gemini.Model)
		case "openrouter":
			fmt.Printf("Model:     %s\n", cfg.OpenRouter.Model)
		}
		fmt.Printf("Timeout:   %s\n", cfg.Timeout)
		fmt.Printf("Retries:   %d\n", cfg.Retry.MaxAttempts)
		return nil
	},
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a short prompt to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
		defer cancel()

		logger := zap.NewNop()
		provider, err := llm.NewProviderFromEnv(ctx, logger)
		if err != nil {
			return fmt.Errorf("build provider: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Testing %s...\n", provider.ModelID())
		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			System:    "You are a connectivity test. Reply with a single word.",
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Say OK."}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}

		fmt.Printf("Response:  %s\n", resp.Content)
		fmt.Printf("Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Printf("Latency:   %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmShowCmd)
	llmCmd.AddCommand(llmTestCmd)
}
