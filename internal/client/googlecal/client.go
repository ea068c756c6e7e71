// Package googlecal is a minimal Google Calendar v3 client used by the
// calendar bridge. It authenticates with stored OAuth refresh-token
// credentials; token refresh is handled by the oauth2 transport.
package googlecal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/draganvukman/task-management/config"
	"github.com/draganvukman/task-management/internal/entities"

	"golang.org/x/oauth2"
)

// Client calls the Google Calendar REST API.
type Client struct {
	baseURL    string
	calendarID string
	httpClient *http.Client
}

// New builds a client from stored credentials. The returned client refreshes
// access tokens transparently and never retries failed calls.
func New(cfg config.GoogleConfig) *Client {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
	}

	base := &oauth2.Token{RefreshToken: cfg.RefreshToken}
	httpClient := oauth2.NewClient(context.Background(), oauthCfg.TokenSource(context.Background(), base))
	httpClient.Timeout = 10 * time.Second

	return &Client{
		baseURL:    cfg.CalendarAPIURL,
		calendarID: cfg.CalendarID,
		httpClient: httpClient,
	}
}

// UpcomingEvents lists up to maxResults future events ordered by start time.
func (c *Client) UpcomingEvents(ctx context.Context, maxResults int) ([]entities.CalendarEvent, error) {
	q := url.Values{}
	q.Set("timeMin", time.Now().UTC().Format(time.RFC3339))
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(c.calendarID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request (calendar): %w", err)
	}

	var list eventList
	if err := c.do(req, &list); err != nil {
		return nil, err
	}

	events := make([]entities.CalendarEvent, 0, len(list.Items))
	for _, item := range list.Items {
		ev, err := toEntity(item)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}

// CreateEvent inserts an event into the calendar.
func (c *Client) CreateEvent(ctx context.Context, src entities.CalendarEvent) (*entities.CalendarEvent, error) {
	body := event{
		Summary:     src.Summary,
		Description: src.Description,
		Start:       eventDateTime{DateTime: src.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         eventDateTime{DateTime: src.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode event (calendar): %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request (calendar): %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created event
	if err := c.do(req, &created); err != nil {
		return nil, err
	}

	ev, err := toEntity(created)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call calendar API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body (calendar): %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("calendar API error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("calendar API status: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response (calendar): %w", err)
	}

	return nil
}

func toEntity(src event) (entities.CalendarEvent, error) {
	start, err := parseEventTime(src.Start)
	if err != nil {
		return entities.CalendarEvent{}, err
	}
	end, err := parseEventTime(src.End)
	if err != nil {
		return entities.CalendarEvent{}, err
	}

	return entities.CalendarEvent{
		ID:          src.ID,
		Summary:     src.Summary,
		Description: src.Description,
		Start:       start,
		End:         end,
		HTMLLink:    src.HTMLLink,
	}, nil
}

func parseEventTime(src eventDateTime) (time.Time, error) {
	if src.DateTime != "" {
		t, err := time.Parse(time.RFC3339, src.DateTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse event time (calendar): %w", err)
		}
		return t.UTC(), nil
	}
	if src.Date != "" {
		t, err := time.Parse("2006-01-02", src.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse event date (calendar): %w", err)
		}
		return t.UTC(), nil
	}
	return time.Time{}, nil
}
