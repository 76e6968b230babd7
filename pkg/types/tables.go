package types

// Standard table names for Pantry.GetTable.
const (
	FieldsTable  = "fields"
	RecordsTable = "records"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	FieldsTable,
	RecordsTable,
}
