package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "llmprobe",
	Short:        "Check connectivity to hosted and local language-model backends",
	Long:         "llmprobe calls Google Gemini, OpenAI and Groq with a tiny prompt, then checks for a local accelerator and an Ollama install.",
	Version:      Version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runProbes,
}
