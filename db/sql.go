package db

import (
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/2HgO/webhook-registry/config"
)

// GetDataDBConnection opens the MySQL handle described by cfg and checks it
// is reachable.
func GetDataDBConnection(cfg *config.Config) (*sql.DB, error) {
	dsn := mysql.Config{
		User:                 cfg.DB.User,
		Passwd:               cfg.DB.Password,
		Net:                  "tcp",
		Addr:                 cfg.DB.Addr,
		DBName:               cfg.DB.Name,
		ParseTime:            true,
		AllowNativePasswords: true,
	}

	dataDb, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, err
	}
	dataDb.SetConnMaxLifetime(3 * time.Minute)
	dataDb.SetMaxOpenConns(10)
	dataDb.SetMaxIdleConns(10)

	if err := dataDb.Ping(); err != nil {
		dataDb.Close()
		return nil, err
	}

	return dataDb, nil
}
