package database

import (
	"fmt"
	"log"

	"teamchat-client/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresConnect opens a connection to the hosted backend's relational
// tables. The schema is owned by the backend; the client never migrates it.
func PostgresConnect() *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.Config("POSTGRES_HOST"),
		config.Config("POSTGRES_PORT"),
		config.Config("POSTGRES_USER"),
		config.Config("POSTGRES_PASSWORD"),
		config.Config("POSTGRES_DB"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect postgres")
	}

	log.Printf("Connection opened to Postgres")
	return db
}
