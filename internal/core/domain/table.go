package domain

// DefaultIDField is the record field used as result identity when a
// descriptor does not name one.
const DefaultIDField = "Id"

// TableDescriptor is the static search configuration of one cached table.
// Descriptors are supplied at configuration time and never change until
// the next configuration replaces the whole set.
type TableDescriptor struct {
	// Table is the unique identifier of the data source.
	Table string `validate:"required"`

	// DisplayName is presentation metadata, opaque to the core.
	DisplayName string

	// Icon is presentation metadata, opaque to the core.
	Icon string

	// FieldsToShow are joined, in order, into the display string.
	FieldsToShow []string `validate:"required,min=1,dive,required"`

	// FieldsToQuery are the fields the substring filter spans.
	FieldsToQuery []string `validate:"required,min=1,dive,required"`

	// ReferenceTemplate is a path such as "/accounts/:Id".
	ReferenceTemplate string `validate:"required,startswith=/"`

	// IDField names the record identity field. Empty means DefaultIDField.
	IDField string
}

// IdentityField returns the field holding the record identity.
func (d TableDescriptor) IdentityField() string {
	if d.IDField == "" {
		return DefaultIDField
	}
	return d.IDField
}

// Clone returns a deep copy so callers cannot mutate configured state.
func (d TableDescriptor) Clone() TableDescriptor {
	c := d
	c.FieldsToShow = append([]string(nil), d.FieldsToShow...)
	c.FieldsToQuery = append([]string(nil), d.FieldsToQuery...)
	return c
}

// Preview returns the presentation metadata handed out synchronously by a search.
func (d TableDescriptor) Preview() TablePreview {
	return TablePreview{
		Table:        d.Table,
		DisplayName:  d.DisplayName,
		Icon:         d.Icon,
		FieldsToShow: append([]string(nil), d.FieldsToShow...),
	}
}

// TablePreview is the per-table placeholder a caller can render before
// any results arrive.
type TablePreview struct {
	Table        string   `json:"table"`
	DisplayName  string   `json:"name"`
	Icon         string   `json:"icon"`
	FieldsToShow []string `json:"fields_to_show"`
}
