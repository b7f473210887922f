// connection.go
//
// Storefront data service for the bakery brand site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of bakery-api.
// bakery-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// bakery-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with bakery-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/models"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a database connection based on the configured DB_TYPE
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	limit := cfg.DBConnectionLimit
	if cfg.DBType == "sqlite" {
		// one writer at a time, and ":memory:" is per connection
		limit = 1
	}
	sqlDB.SetMaxOpenConns(limit)
	sqlDB.SetMaxIdleConns(max(limit/2, 1))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("connected to database", zap.String("type", cfg.DBType), zap.String("database", cfg.DBDatabase))

	return db, nil
}

// Dialector maps the configured DB_TYPE to a gorm dialector
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := mysql.NewConfig()
		dsn.User = cfg.DBUser
		dsn.Passwd = cfg.DBPassword
		dsn.Net = "tcp"
		dsn.Addr = net.JoinHostPort(cfg.DBHost, portOrDefault(cfg.DBPort, "3306"))
		dsn.DBName = cfg.DBDatabase
		dsn.ParseTime = true
		dsn.Loc = time.UTC
		dsn.Params = map[string]string{"charset": "utf8mb4"}
		return gormmysql.Open(dsn.FormatDSN()), nil

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			portOrDefault(cfg.DBPort, "5432"),
		)
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite, DBDatabase is the file path
		return sqlite.Open(cfg.DBDatabase), nil

	case "sqlserver", "mssql":
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
			Host:     net.JoinHostPort(cfg.DBHost, portOrDefault(cfg.DBPort, "1433")),
			RawQuery: url.Values{"database": {cfg.DBDatabase}}.Encode(),
		}
		return sqlserver.Open(u.String()), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// AutoMigrate runs automatic migrations for the storage tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Document{},
		&models.BlobObject{},
	)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func portOrDefault(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}
