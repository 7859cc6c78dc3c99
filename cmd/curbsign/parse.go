package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/curblens/curbsign/internal/config"
	"github.com/curblens/curbsign/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <image>",
	Short: "Parse a parking sign photo",
	Long: `Parse a photograph of a parking sign and print the extracted regulations
as a CDS-compliant record.

Supported image formats: jpg, jpeg, png, heic, heif, webp, tiff, bmp.

Examples:
  curbsign parse sign.jpg
  curbsign parse --provider gpt4 sign.heic
  curbsign parse -o yaml sign.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(cfg.LogLevel),
		}))

		parserCfg, err := cfg.ToParserConfig(providerName)
		if err != nil {
			return err
		}
		parserCfg.Logger = logger

		p, err := parser.New(parserCfg)
		if err != nil {
			return err
		}

		data, err := p.ParseSign(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return writeOutput(data)
	},
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
