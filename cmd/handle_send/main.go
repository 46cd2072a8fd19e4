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

	"github.com/medisure/medisurechat/pkg/chat"
	"github.com/medisure/medisurechat/pkg/directory"
	"github.com/medisure/medisurechat/pkg/messaging"
	"github.com/medisure/medisurechat/pkg/store"
	"github.com/medisure/medisurechat/pkg/svc"
)

type sendRequest struct {
	SenderID   string                       `json:"senderId"`
	SenderRole chat.Role                    `json:"senderRole"`
	Selection  messaging.RecipientSelection `json:"selection"`
	Body       string                       `json:"body"`
}

type sentNotice struct {
	SenderID     string   `json:"senderId"`
	Participants []string `json:"participants"`
	Broadcast    bool     `json:"broadcast"`
}

func handleSendRequest(request sendRequest, st store.Store, dir directory.UserDirectory, snsClient svc.SNS) error {
	// An empty submission never reaches the router or the notifier
	if request.Body == "" {
		return nil
	}

	if sendErr := messaging.Send(st, dir, request.SenderID, request.SenderRole, request.Selection, request.Body); sendErr != nil {
		return sendErr
	}

	target, targetErr := request.Selection.TargetRecord(request.SenderID, request.SenderRole)
	if targetErr != nil {
		return targetErr
	}
	notice := sentNotice{
		SenderID:     request.SenderID,
		Participants: target.ParticipantIDs(),
		Broadcast:    target.IsBroadcast(),
	}
	noticeJSON, _ := json.Marshal(notice)
	return snsClient.Publish(string(noticeJSON), os.Getenv("SNS_TOPIC_ARN"), svc.MessageSentFeed)
}

func handler(request events.SNSEvent) error {
	if len(request.Records) < 1 {
		return nil
	}
	snsRecord := request.Records[0].SNS

	feed, ok := snsRecord.MessageAttributes["feed"]
	if !ok {
		log.Println("Feed not present in SNS message")
		return nil
	}
	if feed != svc.SendMessageFeed {
		log.Printf("No handler for feed %s", feed)
		return nil
	}

	var send sendRequest
	if err := json.Unmarshal([]byte(snsRecord.Message), &send); err != nil {
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

	return handleSendRequest(send, store.NewGormStore(db), directory.NewGormDirectory(db), svc.NewSNSClient())
}

func main() {
	lambda.Start(handler)
}
