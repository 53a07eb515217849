package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Lumos-Labs-HQ/seedling/internal/config"
	"github.com/Lumos-Labs-HQ/seedling/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Seedling project",
	Long:  `Create seedling.config.json, a starter seed plan in db/seeds.yaml and a DATABASE_URL entry in .env.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
}

func initializeProject(dbType template.DatabaseType) error {
	if config.IsInitialized() {
		return fmt.Errorf("%s already exists", config.FileName)
	}

	tmpl := template.NewProjectTemplate(dbType)

	for _, dir := range tmpl.GetDirectoryStructure() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		config.FileName: tmpl.GetConfig(),
	}

	planPath := filepath.Join("db", "seeds.yaml")
	planExists := fileExists(planPath)
	if !planExists {
		files[planPath] = tmpl.GetPlan()
	}
	schemaPath := filepath.Join("db", "schema.sql")
	if !fileExists(schemaPath) {
		files[schemaPath] = tmpl.GetSchema()
	}

	for filePath, content := range files {
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", filePath, err)
		}
	}

	envUpdated, err := writeEnv(tmpl)
	if err != nil {
		return fmt.Errorf("failed to update .env: %w", err)
	}

	color.Green("✅ Initialized Seedling project with %s database support", dbType)
	fmt.Println()
	fmt.Println("📝 Files created:")
	fmt.Printf("   %s\n", config.FileName)
	if planExists {
		fmt.Printf("ℹ️  Skipped %s (already exists)\n", planPath)
	} else {
		fmt.Printf("   %s\n", planPath)
	}
	if envUpdated {
		fmt.Printf("   .env (%s)\n", template.URLEnv)
	}

	if os.Getenv(template.URLEnv) != "" {
		fmt.Println()
		fmt.Printf("ℹ️  Using existing %s from environment\n", template.URLEnv)
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   apply db/schema.sql to your database\n")
	fmt.Printf("   seedling preview    # Show the generated SQL\n")
	fmt.Printf("   seedling seed       # Insert the rows\n")

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeEnv makes sure .env defines the connection string variable, leaving
// every other entry untouched.
func writeEnv(tmpl *template.ProjectTemplate) (bool, error) {
	const envPath = ".env"

	var existing string
	if fileExists(envPath) {
		data, err := os.ReadFile(envPath)
		if err != nil {
			return false, err
		}
		existing = string(data)
	}

	merged, changed := tmpl.MergeEnv(existing)
	if !changed {
		return false, nil
	}
	return true, os.WriteFile(envPath, []byte(merged), 0644)
}
