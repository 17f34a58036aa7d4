package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the registry tables with default types and themes",
	Long:  `Seed note types, leave types and UI themes for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		registries := map[string][]string{
			"note_types":  {"general", "meeting", "reminder", "performance"},
			"leave_types": {"vacation", "sick", "personal", "unpaid", "maternity"},
			"themes":      {"light", "dark", "system"},
		}

		if clearData {
			for table := range registries {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
				fmt.Println("Cleared table:", table)
			}
		}

		for table, names := range registries {
			for _, name := range names {
				var exists int
				err := db.QueryRow(fmt.Sprintf("SELECT 1 FROM %s WHERE name = $1", table), name).Scan(&exists)
				if err == nil {
					continue
				}

				if _, err := db.Exec(fmt.Sprintf("INSERT INTO %s (name) VALUES ($1)", table), name); err != nil {
					log.Fatalf("failed to insert %s into %s: %v", name, table, err)
				}
				fmt.Printf("Seeded %s: %s\n", table, name)
			}
		}

		fmt.Println("Registry tables seeded successfully")
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
