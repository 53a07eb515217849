package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.4.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════╗",
		"║   ___  ___  ___  ___  _    ___  _  _   ___       ║",
		"║  / __|| __|| __||   \\| |  |_ _|| \\| | / __|      ║",
		"║  \\__ \\| _| | _| | |) | |__ | | | .` || (_ |      ║",
		"║  |___/|___||___||___/|____||___||_|\\_| \\___|      ║",
		"║                                                  ║",
		"║        🌱 Declarative test data seeding 🌱        ║",
		"╚══════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                  ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "seedling",
	Short: "Seed databases with generated test data",
	Long: `
Seedling fills database tables with generated rows described in a seed plan.
Each table becomes one multi-row INSERT; tables run in dependency order and
seeding stops at the first failure.

Database Support:
- PostgreSQL (pgx pool or a single lib/pq connection)
- MySQL (database/sql pool or a single connection)
- SQLite (single shared connection)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("Seedling CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./seedling.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("seedling.config")
	}

	viper.SetEnvPrefix("SEEDLING")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}
