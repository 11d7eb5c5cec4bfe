package infrastructures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type MailConfig struct {
	APIKey      string
	BaseURL     string
	FromAddress string
}

// MailClient talks to an HTTP transactional mail API (Resend-style).
type MailClient struct {
	HTTPClient *http.Client
	Config     *MailConfig
	AuthHeader string
}

func NewMailClient() *MailClient {
	appConfig := Config
	if appConfig == nil {
		appConfig = LoadConfig()
	}

	config := &MailConfig{
		APIKey:      appConfig.MAIL_API_KEY,
		BaseURL:     appConfig.MAIL_API_URL,
		FromAddress: appConfig.MAIL_FROM_ADDRESS,
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://api.resend.com"
	}

	return &MailClient{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Config:     config,
		AuthHeader: "Bearer " + config.APIKey,
	}
}

type mailSendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (c *MailClient) Send(to, subject, body string) error {
	payload, err := json.Marshal(mailSendRequest{
		From:    c.Config.FromAddress,
		To:      to,
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.Config.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.AuthHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	return nil
}
