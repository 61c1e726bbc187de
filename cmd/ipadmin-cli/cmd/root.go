package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nfrund/ipadmin/internal/apiclient"
	"github.com/nfrund/ipadmin/internal/logging"
	"github.com/spf13/cobra"
)

var (
	apiURL       string
	apiTimeout   time.Duration
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "ipadmin-cli",
	Short: "Patient feedback admin CLI",
	Long: `ipadmin-cli queries the practice API from the command line.

Available commands:
  lookup     Print a patient's measures and feedback rows
  measures   List the measure catalog
  export     Write a patient's feedback to an Excel workbook
  version    Print the version number

The API address is read from --api-url or the API_URL environment variable
(a .env file in the working directory is loaded first).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.New()
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	timeout := 10 * time.Second
	if d, err := time.ParseDuration(os.Getenv("API_TIMEOUT")); err == nil {
		timeout = d
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", os.Getenv("API_URL"), "base URL of the practice API")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", timeout, "timeout for API requests")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "output format (table or json)")
}

func newClient() (*apiclient.Client, error) {
	base := strings.TrimRight(apiURL, "/")
	if base == "" {
		return nil, fmt.Errorf("no API URL: set --api-url or API_URL")
	}
	return apiclient.New(base, apiTimeout), nil
}

func checkFormat() error {
	switch outputFormat {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("invalid format %q: use table or json", outputFormat)
	}
}
