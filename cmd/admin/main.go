package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"duetchat/backend/internal/config"
	"duetchat/backend/internal/models"
	"duetchat/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "migrate":
		err := db.AutoMigrate(
			&models.Message{},
			&models.Translation{},
			&models.TranslationPreference{},
			&models.Reaction{},
			&models.PushSubscription{},
			&models.Workout{},
		)
		if err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		fmt.Println("Migrations complete.")

	case "link-telegram":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin link-telegram <role A|B> <telegram_chat_id>")
			os.Exit(1)
		}
		role := os.Args[2]
		if !models.ValidRole(role) {
			fmt.Println("role must be A or B")
			os.Exit(1)
		}
		chatID, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			fmt.Println("telegram_chat_id must be an integer")
			os.Exit(1)
		}
		sub := &models.PushSubscription{UserRole: role, TelegramChatID: chatID}
		if err := storageSvc.UpsertPushSubscription(sub); err != nil {
			log.Fatalf("failed to link telegram chat: %v", err)
		}
		fmt.Printf("Linked identity %s to Telegram chat %d.\n", role, chatID)

	case "prune-cache":
		// Translation rows for unsent messages have nothing left to show.
		res := db.Where("message_id IN (?)",
			db.Model(&models.Message{}).Select("id").Where("deleted = ?", true),
		).Delete(&models.Translation{})
		if res.Error != nil {
			log.Fatalf("failed to prune translation cache: %v", res.Error)
		}
		fmt.Printf("Pruned %d translation cache entries.\n", res.RowsAffected)

	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <migrate|link-telegram|prune-cache> [args]")
	os.Exit(1)
}
