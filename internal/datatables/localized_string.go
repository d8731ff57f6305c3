package datatables

import (
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
)

// LocalizedStringEntity is the entity name of the localization table. Each row
// maps a string key to its text.
const LocalizedStringEntity = "LocalizedString"

// LocalizedString is the value type of the localization table.
type LocalizedString = string

// NewLocalizedStringDescriptor describes the scalar localization table.
func NewLocalizedStringDescriptor() *domain.Descriptor[LocalizedString] {
	return domain.ScalarDescriptor[LocalizedString](LocalizedStringEntity)
}
