package main

import (
	"github.com/spf13/cobra"

	"github.com/curblens/curbsign/version"
)

var (
	cfgFile      string
	providerName string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "curbsign",
	Short: "Parse parking sign photos into CDS-compliant curb regulations",
	Long: `Curbsign converts photographs of parking-regulation signs into structured,
CDS-compliant records describing the policies they encode.

The pipeline:
  - Re-encodes the photo to a bounded-size JPEG and extracts EXIF GPS data
  - Sends the image to a multi-modal vision backend (claude or gpt4)
  - Normalizes the model's response into validated CDS policy records`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.curbsign/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&providerName, "provider", "p", "", "vision backend: claude or gpt4 (default from config)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json or yaml",
	)

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
}
