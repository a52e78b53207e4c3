// Package database はスナップショット保存用のMySQL接続を初期化します。
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// GetDSN は環境変数からMySQL接続文字列 (DSN) を構築します。
// SNAPSHOT_DSN が設定されていればそれをそのまま使い、
// なければ DB_* の各変数から組み立てます。
func GetDSN() string {
	if dsn := os.Getenv("SNAPSHOT_DSN"); dsn != "" {
		return dsn
	}

	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, name)
}

// InitDB はスナップショット用のデータベース接続を初期化します。
// スナップショットが有効なときにしか呼ばれないため、接続できない場合は
// 起動を中断します。
func InitDB() *sql.DB {
	dsn := GetDSN()
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Fatal: Failed to open snapshot database connection: %v", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		log.Fatalf("Fatal: Failed to ping snapshot database: %v", err)
	}
	log.Println("Successfully connected to snapshot database!")
	return db
}
