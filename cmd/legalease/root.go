package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Lllllllleong/legalease/internal/app"
	"github.com/Lllllllleong/legalease/internal/config"
)

var (
	envFile  string
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "legalease",
	Short: "LegalEase - plain-language explanations of legal documents",
	Long: `LegalEase extracts the text of a legal document (PDF, DOCX, image or plain
text), rewrites it in plain language with Gemini on Vertex AI, and optionally
translates the result into one of ~80 languages.

Without PROJECT_ID the commands still run and return clearly marked fallback
output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		level := os.Getenv("LOG_LEVEL")
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		// Logs go to stderr so command output stays pipeable.
		app.SetupLogging(os.Stderr, config.ParseLevel(level))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd, processCmd, languagesCmd, versionCmd)
}
