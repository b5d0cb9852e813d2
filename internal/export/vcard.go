package export

import (
	"fmt"
	"io"

	"github.com/emersion/go-vcard"

	"github.com/mmynk/neondara/internal/models"
)

// VCardFilename is the download name of the contacts export.
const VCardFilename = "Neondara_People.vcf"

// WriteVCards writes one vCard 4.0 per person. The relation becomes a category.
func WriteVCards(w io.Writer, people []models.Person) error {
	enc := vcard.NewEncoder(w)
	for _, p := range people {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldFormattedName, p.Name)
		card.SetValue(vcard.FieldUID, "urn:uuid:"+p.ID)
		card.SetKind(vcard.KindIndividual)
		if p.Relation != "" {
			card.SetValue(vcard.FieldCategories, string(p.Relation))
		}
		if p.Notes != "" {
			card.SetValue(vcard.FieldNote, p.Notes)
		}
		vcard.ToV4(card)

		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("failed to encode %s: %w", p.Name, err)
		}
	}
	return nil
}
