package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/sfreiberg/gotwilio"

	"github.com/medisure/medisurechat/pkg/chat"
	"github.com/medisure/medisurechat/pkg/directory"
	"github.com/medisure/medisurechat/pkg/notify"
	"github.com/medisure/medisurechat/pkg/svc"
)

type sentNotice struct {
	SenderID     string   `json:"senderId"`
	Participants []string `json:"participants"`
	Broadcast    bool     `json:"broadcast"`
}

// messageDir is where the bundled i18n message files live; override for
// deployments that unpack them elsewhere
func messageDir() string {
	if dir := os.Getenv("I18N_DIR"); dir != "" {
		return dir
	}
	return "i18n"
}

// notifyUser sends an SMS notice to one user if they are offline and have a
// phone number on file
func notifyUser(id string, senderName string, broadcast bool, db *gorm.DB, notifier *svc.TwilioNotifier) error {
	var user directory.User
	query := db.Where("id = ?", id).First(&user)
	if query.RecordNotFound() {
		log.Printf("No user %s to notify", id)
		return nil
	}
	if query.Error != nil {
		return query.Error
	}
	if chat.IsOnline(user.Profile()) || user.Phone == "" {
		return nil
	}

	localizer := notify.LoadLocalizer(messageDir(), user.Language)
	body := notify.OfflineNotice(localizer, senderName)
	if broadcast {
		body = notify.BroadcastNotice(localizer, senderName)
	}
	return notifier.Notify(user.Phone, body)
}

func handleSentNotice(notice sentNotice, db *gorm.DB, notifier *svc.TwilioNotifier) error {
	dir := directory.NewGormDirectory(db)
	sender, err := dir.GetUserProfile(notice.SenderID)
	if err != nil {
		return err
	}

	recipients := notice.Participants
	if notice.Broadcast {
		doctors, listErr := dir.ListByRole(chat.RoleDoctor)
		if listErr != nil {
			return listErr
		}
		recipients = nil
		for _, doctor := range doctors {
			recipients = append(recipients, doctor.ID)
		}
	}

	for _, id := range recipients {
		if id == notice.SenderID {
			continue
		}
		if notifyErr := notifyUser(id, sender.Username, notice.Broadcast, db, notifier); notifyErr != nil {
			// One failed SMS should not block the remaining recipients
			log.Printf("Notify failed for %s: %v", id, notifyErr)
		}
	}
	return nil
}

func handler(request events.SNSEvent) error {
	if len(request.Records) < 1 {
		return nil
	}
	snsRecord := request.Records[0].SNS

	if feed, ok := snsRecord.MessageAttributes["feed"]; !ok || feed != svc.MessageSentFeed {
		return nil
	}

	var notice sentNotice
	if err := json.Unmarshal([]byte(snsRecord.Message), &notice); err != nil {
		return err
	}

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

	client := gotwilio.NewTwilioClient(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
	)
	notifier := svc.NewTwilioNotifier(client, os.Getenv("TWILIO_FROM"))

	return handleSentNotice(notice, db, notifier)
}

func main() {
	lambda.Start(handler)
}
