package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jinzhu/gorm"
	"github.com/jinzhu/gorm/dialects/postgres"

	"github.com/medisure/medisurechat/pkg/directory"
	"github.com/medisure/medisurechat/pkg/store"
)

func handler(request events.CloudWatchEvent) error {
	db, err := gorm.Open("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s",
		os.Getenv("RDS_HOST"),
		os.Getenv("RDS_PORT"),
		os.Getenv("RDS_USERNAME"),
		os.Getenv("RDS_DB_NAME"),
		os.Getenv("RDS_PASSWORD"),
	))
	if err != nil {
		return err
	}
	defer db.Close()

	db.AutoMigrate(&directory.User{})
	db.AutoMigrate(&store.MessageDoc{})

	// Seed the singleton message document so writes always have a version
	// row to guard against
	var count int
	db.Model(&store.MessageDoc{}).Count(&count)
	if count == 0 {
		empty, _ := json.Marshal(map[string]interface{}{"messages": []interface{}{}})
		doc := store.MessageDoc{
			Version: 1,
			Data:    postgres.Jsonb{RawMessage: json.RawMessage(empty)},
		}
		db.Create(&doc)
	}

	return nil
}

func main() {
	lambda.Start(handler)
}
