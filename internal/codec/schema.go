package codec

// FieldDef is one (name, type) pair in a schema
type FieldDef struct {
	Name string
	Type FieldType
}

// Schema is an ordered field layout for one listing kind. Field order is the
// wire order; two commitments of the same schema always serialize their
// fields identically.
//
// A Prefix schema covers only the leading fields of a larger layout: decoding
// against it stops after its last field and ignores the remainder, which lets
// browsing decode summary fields out of a full commitment without touching
// the rest.
type Schema struct {
	Name   string
	Fields []FieldDef
	Prefix bool
}

// Index returns the position of a named field, or -1 if the schema does not
// carry it.
func (s Schema) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Field names shared by both listing schemas
const (
	FieldName              = "name"
	FieldSatoshis          = "satoshis"
	FieldCoverLocator      = "coverLocator"
	FieldRetentionDeadline = "retentionDeadline"
	FieldFileLocator       = "fileLocator"
	FieldDescription       = "description"
	FieldCreatorPublicKey  = "creatorPublicKey"
	FieldSize              = "size"
)

// FullListingSchema carries everything a details view needs. The summary
// fields lead the layout so SummaryListingSchema is a strict positional
// prefix of it.
var FullListingSchema = Schema{
	Name: "listing.full",
	Fields: []FieldDef{
		{Name: FieldName, Type: TypeText},
		{Name: FieldSatoshis, Type: TypeInteger},
		{Name: FieldCoverLocator, Type: TypeLocator},
		{Name: FieldRetentionDeadline, Type: TypeInteger},
		{Name: FieldFileLocator, Type: TypeLocator},
		{Name: FieldDescription, Type: TypeText},
		{Name: FieldCreatorPublicKey, Type: TypePublicKey},
		{Name: FieldSize, Type: TypeInteger},
	},
}

// SummaryListingSchema is the browse subset: enough to render a store card
// without decoding full detail.
var SummaryListingSchema = Schema{
	Name: "listing.summary",
	Fields: []FieldDef{
		{Name: FieldName, Type: TypeText},
		{Name: FieldSatoshis, Type: TypeInteger},
		{Name: FieldCoverLocator, Type: TypeLocator},
		{Name: FieldRetentionDeadline, Type: TypeInteger},
	},
	Prefix: true,
}
