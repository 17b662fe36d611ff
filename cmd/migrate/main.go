package main

import (
	"log"
	"os"

	"ai-chatbox-be/internal/model"
	"ai-chatbox-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions (AutoMigrate doesn't handle these)
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	models := []interface{}{
		&model.User{},
		&model.Conversation{},
		&model.Message{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: cascading FKs and row-level ownership policies.
	// AutoMigrate creates plain indexes; the cascade chain and RLS policies
	// mirror the hosted-Postgres schema this service archives into.
	postMigrationSQL := []string{
		`ALTER TABLE conversations DROP CONSTRAINT IF EXISTS fk_conversations_user;`,
		`ALTER TABLE conversations ADD CONSTRAINT fk_conversations_user
		 FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`,

		`ALTER TABLE messages DROP CONSTRAINT IF EXISTS fk_messages_conversation;`,
		`ALTER TABLE messages ADD CONSTRAINT fk_messages_conversation
		 FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE;`,

		`ALTER TABLE conversations ENABLE ROW LEVEL SECURITY;`,
		`DROP POLICY IF EXISTS conversations_owner ON conversations;`,
		`CREATE POLICY conversations_owner ON conversations
		 USING (user_id = current_setting('app.current_user_id', true)::uuid);`,

		`ALTER TABLE messages ENABLE ROW LEVEL SECURITY;`,
		`DROP POLICY IF EXISTS messages_owner ON messages;`,
		`CREATE POLICY messages_owner ON messages
		 USING (conversation_id IN (
		   SELECT id FROM conversations
		   WHERE user_id = current_setting('app.current_user_id', true)::uuid
		 ));`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
