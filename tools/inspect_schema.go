package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/database"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Prints the tables and columns the SQL backend migrates to.
// Without -f an in-memory sqlite database is used.
func main() {
	envFile := flag.String("f", "", "inspect the database configured in this .env file")
	flag.Parse()

	db, err := open(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		log.Fatal(err)
	}

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		columns, err := db.Migrator().ColumnTypes(table)
		if err != nil {
			log.Fatal(err)
		}
		for _, col := range columns {
			nullable, _ := col.Nullable()
			primary, _ := col.PrimaryKey()
			fmt.Printf("  %-18s %-16s nullable=%t primary=%t\n", col.Name(), col.DatabaseTypeName(), nullable, primary)
		}
	}
}

func open(envFile string) (*gorm.DB, error) {
	if envFile == "" {
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return database.Connect(cfg, zap.NewNop())
}
