// database/db.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"vulnops/config"

	_ "github.com/lib/pq"
)

func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Bağlantıyı test et
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Bağlantı havuzu ayarları
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	log.Println("Veritabanına başarıyla bağlandı")
	return db, nil
}

func InitDB(db *sql.DB) error {
	// Çözüm geçmişi tablosu
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS solves (
            id VARCHAR(36) PRIMARY KEY,
            user_id TEXT NOT NULL,
            username TEXT NOT NULL,
            challenge_id VARCHAR(16) NOT NULL,
            challenge_title TEXT NOT NULL,
            points INTEGER NOT NULL DEFAULT 0,
            first_blood BOOLEAN NOT NULL DEFAULT FALSE,
            ip_address TEXT,
            solved_at TIMESTAMP NOT NULL DEFAULT NOW()
        )
    `)
	if err != nil {
		return err
	}

	// İndeksler
	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_solves_challenge_id ON solves(challenge_id);
        CREATE INDEX IF NOT EXISTS idx_solves_solved_at ON solves(solved_at);
    `)
	return err
}
