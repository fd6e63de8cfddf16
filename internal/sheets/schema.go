package sheets

// Sheet declares one row-keyed sheet: its title and ordered column
// attributes. The first column is the row key.
type Sheet struct {
	Title   string
	Columns []string
}

// Schema is an ordered set of sheet declarations. Provisioning creates
// sheets in declaration order.
type Schema []Sheet

// Columns returns the declared column attributes for a sheet title, or
// nil when the sheet is not part of the schema.
func (s Schema) Columns(title string) []string {
	for _, sheet := range s {
		if sheet.Title == title {
			return sheet.Columns
		}
	}
	return nil
}
