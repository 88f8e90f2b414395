// Package annotations is the append-only comment and notification log that
// accompanies a report. It is owned by the serving layer and passed to it
// by handle; the analytics engine never reads or writes it. Outbound email
// is simulated only: sends are recorded, nothing is delivered.
package annotations

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"salespulse/internal/errors"
)

// Source identifies where a comment came from.
type Source string

const (
	SourceDashboard Source = "dashboard"
	SourceEmail     Source = "email"
)

// Comment is one annotation on the report.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Source    Source    `json:"source"`
	Sender    string    `json:"sender,omitempty"`
	Subject   string    `json:"subject,omitempty"`
}

// SentEmail records one simulated outbound report delivery.
type SentEmail struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is a concurrency-safe append-only annotation store scoped to the
// process lifetime.
type Log struct {
	mu         sync.Mutex
	comments   []Comment
	sentEmails []SentEmail
	now        func() time.Time
}

// NewLog creates an empty annotation log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// NewLogWithClock creates a log with a fixed clock, for tests.
func NewLogWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

// Add appends a dashboard comment. Blank text is rejected.
func (l *Log) Add(text string) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, errors.NewValidationError("comment text must not be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	c := Comment{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: l.now(),
		Source:    SourceDashboard,
	}
	l.comments = append(l.comments, c)
	return c, nil
}

// ReceiveEmailReply appends a simulated inbound email reply.
func (l *Log) ReceiveEmailReply(sender, subject, text string) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, errors.NewValidationError("reply content must not be empty")
	}
	if !strings.Contains(sender, "@") {
		return Comment{}, errors.NewValidationError("reply sender must be a valid email address")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	c := Comment{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: l.now(),
		Source:    SourceEmail,
		Sender:    sender,
		Subject:   subject,
	}
	l.comments = append(l.comments, c)
	return c, nil
}

// Comments returns comments newest first. A non-empty source filters to
// that source only.
func (l *Log) Comments(source Source) []Comment {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Comment, 0, len(l.comments))
	for _, c := range l.comments {
		if source != "" && c.Source != source {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Remove deletes a comment by ID, reporting whether it existed.
func (l *Log) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, c := range l.comments {
		if c.ID == id {
			l.comments = append(l.comments[:i], l.comments[i+1:]...)
			return true
		}
	}
	return false
}

// RecordSend records a simulated outbound report email. The recipient must
// look like an email address; no delivery is attempted.
func (l *Log) RecordSend(recipient, subject string) (SentEmail, error) {
	if !strings.Contains(recipient, "@") {
		return SentEmail{}, errors.NewValidationError("recipient must be a valid email address")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	e := SentEmail{Recipient: recipient, Subject: subject, Timestamp: l.now()}
	l.sentEmails = append(l.sentEmails, e)
	return e, nil
}

// SentEmails returns the simulated send history, oldest first.
func (l *Log) SentEmails() []SentEmail {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]SentEmail, len(l.sentEmails))
	copy(out, l.sentEmails)
	return out
}
