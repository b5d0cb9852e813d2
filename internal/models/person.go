package models

import "strings"

// Relation is the optional family/social label of a contact.
type Relation string

const (
	RelationAunt         Relation = "Aunt"
	RelationBrother      Relation = "Brother"
	RelationBrotherInLaw Relation = "Brother-in-law"
	RelationCousin       Relation = "Cousin"
	RelationDaughter     Relation = "Daughter"
	RelationFather       Relation = "Father"
	RelationFatherInLaw  Relation = "Father-in-law"
	RelationFriend       Relation = "Friend"
	RelationGrandfather  Relation = "Grandfather"
	RelationGrandmother  Relation = "Grandmother"
	RelationMother       Relation = "Mother"
	RelationMotherInLaw  Relation = "Mother-in-law"
	RelationNephew       Relation = "Nephew"
	RelationNiece        Relation = "Niece"
	RelationOther        Relation = "Other"
	RelationSister       Relation = "Sister"
	RelationSisterInLaw  Relation = "Sister-in-law"
	RelationSon          Relation = "Son"
	RelationUncle        Relation = "Uncle"
)

// Relations lists every accepted relation label.
var Relations = []Relation{
	RelationAunt, RelationBrother, RelationBrotherInLaw, RelationCousin, RelationDaughter,
	RelationFather, RelationFatherInLaw, RelationFriend, RelationGrandfather, RelationGrandmother,
	RelationMother, RelationMotherInLaw, RelationNephew, RelationNiece, RelationOther,
	RelationSister, RelationSisterInLaw, RelationSon, RelationUncle,
}

// Person is a contact of the owning user.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// OwnerID is the user this contact belongs to.
	OwnerID string

	// Name is unique per owner, compared case-insensitively after trimming.
	Name string `validate:"required,max=100"`

	// Relation is optional; empty means unset.
	Relation Relation `validate:"omitempty,relation"`

	Notes string `validate:"max=2000"`

	// CreatedAt is the Unix timestamp when the person was added.
	CreatedAt int64
}

// Normalize trims user-entered text in place.
func (p *Person) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Notes = strings.TrimSpace(p.Notes)
}

// SameName reports whether two contact names collide under the uniqueness rule.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// IsValidRelation reports whether r is one of the known labels.
func IsValidRelation(r Relation) bool {
	for _, known := range Relations {
		if r == known {
			return true
		}
	}
	return false
}
