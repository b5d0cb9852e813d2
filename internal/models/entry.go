package models

import (
	"encoding/base64"
	"strings"
	"time"
)

// Direction records which way a gift moved.
type Direction string

const (
	DirectionGiven    Direction = "given"
	DirectionReceived Direction = "received"
)

// Event is the occasion an exchange happened on.
type Event string

const (
	EventWedding      Event = "Wedding"
	EventBirth        Event = "Birth"
	EventHousewarming Event = "Housewarming"
	EventOther        Event = "Other"
)

// GiftType is the discriminator of the entry union.
type GiftType string

const (
	GiftTypeMoney  GiftType = "Money"
	GiftTypeSweets GiftType = "Sweets"
	GiftTypeGift   GiftType = "Gift"
	GiftTypeOther  GiftType = "Other"
)

// MaxImageBytes bounds the decoded size of an embedded gift photo.
const MaxImageBytes = 500 * 1024

const imagePrefix = "data:image/"

// DateLayout is the wire and storage format of calendar days.
const DateLayout = "2006-01-02"

// Entry is one recorded gift exchange with a person.
//
// Amount is meaningful for Money (currency units) and Sweets (kilograms)
// and is always nil for Gift and Other. For Money the Description holds the
// currency label; for Gift it holds either free text or an image data URL.
type Entry struct {
	ID          string
	OwnerID     string
	PersonID    string    `validate:"required"`
	Direction   Direction `validate:"oneof=given received"`
	Date        time.Time `validate:"required"`
	Event       Event     `validate:"oneof=Wedding Birth Housewarming Other"`
	GiftType    GiftType  `validate:"oneof=Money Sweets Gift Other"`
	Amount      *float64
	Description string
	Notes       string `validate:"max=2000"`
	CreatedAt   int64

	// PersonName is filled in by the store on reads; it is not persisted.
	PersonName string
}

// HasAmount reports whether the entry carries a numeric amount.
func (e *Entry) HasAmount() bool {
	return e.Amount != nil
}

// AmountValue returns the amount, or zero when absent.
func (e *Entry) AmountValue() float64 {
	if e.Amount == nil {
		return 0
	}
	return *e.Amount
}

// IsImage reports whether the description is an embedded image payload.
func (e *Entry) IsImage() bool {
	return e.GiftType == GiftTypeGift && IsImagePayload(e.Description)
}

// Normalize trims text fields, truncates the date to a calendar day and
// forces the amount to nil for gift types that do not carry one.
func (e *Entry) Normalize() {
	e.Notes = strings.TrimSpace(e.Notes)
	if !IsImagePayload(e.Description) {
		e.Description = strings.TrimSpace(e.Description)
	}
	if !e.Date.IsZero() {
		e.Date = CalendarDay(e.Date)
	}
	if e.GiftType == GiftTypeGift || e.GiftType == GiftTypeOther {
		e.Amount = nil
	}
}

// IsImagePayload reports whether s looks like a base64 image data URL.
func IsImagePayload(s string) bool {
	return strings.HasPrefix(s, imagePrefix) && strings.Contains(s, ";base64,")
}

// DecodedImageSize returns the byte length of the image encoded in a data URL.
func DecodedImageSize(payload string) (int, error) {
	_, data, ok := strings.Cut(payload, ";base64,")
	if !ok {
		return 0, base64.CorruptInputError(0)
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}

// CalendarDay returns t truncated to midnight UTC of its own calendar day.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
