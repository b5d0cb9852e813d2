// Package validation checks records once at the API boundary.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/neondara/internal/models"
)

// minTextLen is the shortest accepted description for sweets, gifts and other items.
const minTextLen = 2

// ErrInvalid is wrapped by every error returned from this package.
var ErrInvalid = errors.New("invalid input")

// Validator validates domain records by their struct tags plus the rules
// that depend on more than one field.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the domain rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("relation", func(fl validator.FieldLevel) bool {
		return models.IsValidRelation(models.Relation(fl.Field().String()))
	})
	v.RegisterStructValidation(entryStructLevel, models.Entry{})
	return &Validator{validate: v}
}

// Person validates a contact. Call Normalize first.
func (v *Validator) Person(p *models.Person) error {
	return v.check(p)
}

// Entry validates a ledger entry. Call Normalize first.
func (v *Validator) Entry(e *models.Entry) error {
	return v.check(e)
}

// Bill validates a shared bill's own fields and participant list.
// Share totals are checked separately by the calculator.
func (v *Validator) Bill(b *models.Bill) error {
	return v.check(b)
}

// Email validates a login address.
func (v *Validator) Email(email string) error {
	if err := v.validate.Var(email, "required,email,max=254"); err != nil {
		return fmt.Errorf("%w: email: %s", ErrInvalid, describe(err))
	}
	return nil
}

func (v *Validator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	return nil
}

func entryStructLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(models.Entry)

	switch e.GiftType {
	case models.GiftTypeMoney:
		if e.Amount == nil || *e.Amount <= 0 {
			sl.ReportError(e.Amount, "amount", "Amount", "positive", "")
		}
		if strings.TrimSpace(e.Description) == "" {
			sl.ReportError(e.Description, "description", "Description", "currency", "")
		}
	case models.GiftTypeSweets:
		if e.Amount == nil || *e.Amount <= 0 {
			sl.ReportError(e.Amount, "amount", "Amount", "positive", "")
		}
		if utf8.RuneCountInString(e.Description) < minTextLen {
			sl.ReportError(e.Description, "description", "Description", "min", "2")
		}
	case models.GiftTypeGift:
		if e.Amount != nil {
			sl.ReportError(e.Amount, "amount", "Amount", "excluded", "")
		}
		if models.IsImagePayload(e.Description) {
			size, err := models.DecodedImageSize(e.Description)
			if err != nil {
				sl.ReportError(e.Description, "description", "Description", "image", "")
			} else if size > models.MaxImageBytes {
				sl.ReportError(e.Description, "description", "Description", "image_size", fmt.Sprint(models.MaxImageBytes))
			}
		} else if utf8.RuneCountInString(e.Description) < minTextLen {
			sl.ReportError(e.Description, "description", "Description", "min", "2")
		}
	case models.GiftTypeOther:
		if e.Amount != nil {
			sl.ReportError(e.Amount, "amount", "Amount", "excluded", "")
		}
		if utf8.RuneCountInString(e.Description) < minTextLen {
			sl.ReportError(e.Description, "description", "Description", "min", "2")
		}
	}
}

// describe flattens validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fieldName(fe), rule))
	}
	return strings.Join(parts, "; ")
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return strings.ToLower(fe.Field())
	}
	return lowerFirst(ns)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToLower(string(r)) + s[size:]
}
