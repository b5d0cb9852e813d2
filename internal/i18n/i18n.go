// Package i18n loads the English and Urdu message catalogs and picks one per request.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message IDs shared by services and exports.
const (
	ColumnSerialNo    = "ColumnSerialNo"
	ColumnDate        = "ColumnDate"
	ColumnPerson      = "ColumnPerson"
	ColumnStatus      = "ColumnStatus"
	ColumnEvent       = "ColumnEvent"
	ColumnGiftType    = "ColumnGiftType"
	ColumnAmount      = "ColumnAmount"
	ColumnDescription = "ColumnDescription"
	ColumnNotes       = "ColumnNotes"
	ImageEmbedded     = "ImageEmbedded"
	BalanceSummary    = "BalanceSummary"
	TotalGiven        = "TotalGiven"
	TotalReceived     = "TotalReceived"
	NetBalance        = "NetBalance"
	NoDataToExport    = "NoDataToExport"
	SheetName         = "SheetName"
	StatusOwed        = "StatusOwed"
	StatusOwing       = "StatusOwing"
	StatusSquare      = "StatusSquare"
	PersonNotFound    = "PersonNotFound"
)

// Supported lists the catalogs shipped with the binary, default first.
var Supported = []language.Tag{language.English, language.Urdu}

// Translator holds the loaded catalogs.
type Translator struct {
	bundle   *i18n.Bundle
	matcher  language.Matcher
	fallback language.Tag
}

// New loads every embedded catalog. defaultLang is used when a request
// names no supported language; empty means English.
func New(defaultLang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}
	for _, f := range files {
		name := f.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug("skipping locale file", "file", name)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	fallback := language.English
	if defaultLang != "" {
		tag, err := language.Parse(defaultLang)
		if err != nil {
			return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
		}
		fallback = tag
	}

	return &Translator{
		bundle:   bundle,
		matcher:  language.NewMatcher(Supported),
		fallback: fallback,
	}, nil
}

// Localizer renders messages in one language.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
	printer   *message.Printer
}

// For picks the best supported language for the given preferences, each
// either a tag ("ur") or an Accept-Language value.
func (t *Translator) For(prefs ...string) *Localizer {
	tag := t.match(prefs...)
	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(t.bundle, tag.String()),
		printer:   message.NewPrinter(tag),
	}
}

// FromRequest uses the lang query parameter, then Accept-Language.
func (t *Translator) FromRequest(r *http.Request) *Localizer {
	return t.For(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

// FromHeader uses an Accept-Language header value.
func (t *Translator) FromHeader(h http.Header) *Localizer {
	return t.For(h.Get("Accept-Language"))
}

func (t *Translator) match(prefs ...string) language.Tag {
	for _, pref := range prefs {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := t.matcher.Match(tags...)
		if conf != language.No {
			return Supported[idx]
		}
	}
	_, idx, _ := t.matcher.Match(t.fallback)
	return Supported[idx]
}

// Tag is the language this localizer renders.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// IsRTL reports whether the language is written right to left.
func (l *Localizer) IsRTL() bool {
	base, _ := l.tag.Base()
	return base.String() == "ur"
}

// T translates id, falling back to the id itself when missing.
func (l *Localizer) T(id string) string {
	return l.TData(id, nil)
}

// TData translates id with template data.
func (l *Localizer) TData(id string, data map[string]any) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		slog.Debug("missing translation", "id", id, "lang", l.tag.String(), "error", err)
		return id
	}
	return msg
}

// Amount formats a monetary magnitude with two decimals and locale grouping.
func (l *Localizer) Amount(v float64) string {
	return l.printer.Sprint(number.Decimal(math.Abs(v), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Enum translates a domain label such as a direction, event or gift type.
// prefix is one of "Direction", "Event" or "GiftType".
func (l *Localizer) Enum(prefix, value string) string {
	if value == "" {
		return ""
	}
	id := prefix + strings.ToUpper(value[:1]) + value[1:]
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return value
	}
	return msg
}
