package utils

import (
	"fmt"
	"log"

	"github.com/raushankrgupta/closetly/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an email using SendGrid
func SendEmail(toName, toEmail, subject, textContent, htmlContent string) error {
	if config.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail("Closetly", "no-reply@closetly.in")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("SendGrid API Error: Status Code %d, Body: %s", response.StatusCode, response.Body)
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	log.Printf("Email sent successfully to %s. Status Code: %d", toEmail, response.StatusCode)
	return nil
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(fullName, email string) error {
	subject := "Welcome to Closetly"
	text := fmt.Sprintf("Hi %s,\n\nYour Closetly account is ready. Find your colour season and compare prices across Indian retailers.\n\nThe Closetly team", fullName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your Closetly account is ready. Find your colour season and compare prices across Indian retailers.</p><p>The Closetly team</p>", fullName)
	return SendEmail(fullName, email, subject, text, html)
}
