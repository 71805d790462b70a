package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	if sesClient == nil {
		return fmt.Errorf("mailer not initialized")
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendSummaryEmail mails a plain-text progress summary for a date range.
func SendSummaryEmail(to, rangeLabel string, avgScore, completionRate, daysWithData, totalDays, totalMeals int) error {
	subject := fmt.Sprintf("Your %s progress summary", rangeLabel)
	body := fmt.Sprintf(
		"Here is your %s summary:\n\n"+
			"Average score: %d/100\n"+
			"Days logged: %d of %d (%d%% completion)\n"+
			"Meals logged: %d\n\n"+
			"Keep feeding your five defense systems!",
		rangeLabel, avgScore, daysWithData, totalDays, completionRate, totalMeals,
	)
	return sendEmail(to, subject, body)
}
