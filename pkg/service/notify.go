package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"maritime-threats-backend/pkg/model"
)

const teamsNotifyRetries = 3

// TeamsNotifier posts a MessageCard for each new threat to an incoming
// webhook. An empty webhook URL disables delivery.
type TeamsNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewTeamsNotifier(webhookURL string) model.Notifier {
	return &TeamsNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type messageCard struct {
	Type       string        `json:"@type"`
	Context    string        `json:"@context"`
	ThemeColor string        `json:"themeColor"`
	Summary    string        `json:"summary"`
	Title      string        `json:"title"`
	Sections   []cardSection `json:"sections"`
}

type cardSection struct {
	ActivityTitle string     `json:"activityTitle,omitempty"`
	Text          string     `json:"text,omitempty"`
	Facts         []cardFact `json:"facts,omitempty"`
}

type cardFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func newThreatCard(threat *model.Threat) *messageCard {
	return &messageCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: "D9534F",
		Summary:    threat.Title,
		Title:      fmt.Sprintf("New Maritime Threat: %s", threat.Title),
		Sections: []cardSection{
			{
				Text: threat.Description,
				Facts: []cardFact{
					{Name: "Region", Value: threat.Region},
					{Name: "Category", Value: threat.Category},
					{Name: "Countries", Value: strings.Join(threat.Countries, ", ")},
					{Name: "Potential Impact", Value: threat.PotentialImpact},
					{Name: "Date Mentioned", Value: threat.DateMentioned},
				},
			},
		},
	}
}

func (n *TeamsNotifier) NotifyThreat(ctx context.Context, threat *model.Threat) error {
	if n.webhookURL == "" {
		log.Println("Teams webhook not configured, skipping notification")
		return nil
	}

	body, err := json.Marshal(newThreatCard(threat))
	if err != nil {
		return err
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), teamsNotifyRetries), ctx))
}
