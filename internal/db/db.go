package db

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

func InitDB(dbURL string) *sql.DB {
	db, err := sql.Open("mysql", dbURL)
	if err != nil {
		log.Fatal("cannot open database:", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("database is not responding:", err)
	}

	log.Println("connected to database")
	return db
}

func RunMigrations(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100),
			email VARCHAR(100) NOT NULL,
			role VARCHAR(50) DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email)
		);`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			category VARCHAR(100) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			recipe TEXT,
			image VARCHAR(500)
		);`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100),
			details TEXT,
			rating DECIMAL(3,1)
		);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(100) NOT NULL,
			menu_item_id INT NOT NULL,
			name VARCHAR(200),
			image VARCHAR(500),
			price DECIMAL(10,2) NOT NULL,
			INDEX idx_cart_email (email)
		);`,
		`CREATE TABLE IF NOT EXISTS payments (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(100) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			transaction_id VARCHAR(100) NOT NULL,
			cart_ids JSON,
			date DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_transaction_id (transaction_id),
			INDEX idx_payment_email (email)
		);`,
		`CREATE TABLE IF NOT EXISTS payment_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			payment_id INT NOT NULL,
			menu_item_id INT NOT NULL,
			INDEX idx_payment_id (payment_id),
			FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
		);`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatal("migration failed:", err)
		}
	}
	log.Println("migrations complete")
}
