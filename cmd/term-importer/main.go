// cmd/term-importer - bulk-load curated Quechua dictionary entries.
//
// Usage: term-importer <terms.json>
// The file is a JSON array of objects matching the /api/quechua payload.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"ulenguage/database"
	"ulenguage/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type importEntry struct {
	Spanish         string   `json:"spanish"`
	QuechuaCusqueno string   `json:"quechua_cusqueno"`
	Context         string   `json:"context"`
	Category        string   `json:"category"`
	Examples        []string `json:"examples"`
}

func main() {
	if len(os.Args) != 2 {
		log.Fatal("Usage: term-importer <terms.json>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var entries []importEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}
	if len(entries) == 0 {
		log.Fatal("No entries in file")
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	imported, skipped, failed := 0, 0, 0
	for _, entry := range entries {
		if entry.Spanish == "" || entry.QuechuaCusqueno == "" {
			failed++
			fmt.Printf("  skipping invalid entry: %+v\n", entry)
			continue
		}

		term := models.QuechuaTerm{
			Spanish:         entry.Spanish,
			QuechuaCusqueno: entry.QuechuaCusqueno,
			Context:         entry.Context,
			Category:        entry.Category,
			Examples:        entry.Examples,
		}
		if err := db.Create(&term).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			failed++
			fmt.Printf("  failed %q: %v\n", entry.Spanish, err)
			continue
		}
		imported++
	}

	fmt.Printf("Done: %d imported, %d duplicates skipped, %d failed\n", imported, skipped, failed)
}
