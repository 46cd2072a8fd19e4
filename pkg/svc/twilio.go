package svc

import (
	"fmt"

	"github.com/sfreiberg/gotwilio"
)

// TwilioClient generalizes access to Twilio
type TwilioClient interface {
	SendSMS(string, string, string, string, string) (*gotwilio.SmsResponse, *gotwilio.Exception, error)
}

// TwilioNotifier sends SMS notices about new messages to users who are
// offline and would otherwise not see them until their next visit
type TwilioNotifier struct {
	Client TwilioClient
	From   string // The Twilio automated number
}

// NewTwilioNotifier is a constructor for TwilioNotifier structs
func NewTwilioNotifier(client TwilioClient, from string) *TwilioNotifier {
	return &TwilioNotifier{
		Client: client,
		From:   from,
	}
}

// Notify sends a single SMS notice to the given phone number
func (n *TwilioNotifier) Notify(to string, body string) error {
	_, twilioErr, err := n.Client.SendSMS(n.From, to, body, "", "")
	if err != nil {
		return err
	}
	if twilioErr != nil {
		return fmt.Errorf("Twilio returned error code: %s", *twilioErr)
	}
	return nil
}
