package orm

// TableNamer lets an entity pick its table instead of the inflected plural
// of its type name, e.g. to point Magazine at a legacy "periodicals" table.
type TableNamer interface {
	TableName() string
}

// ResolveTableName returns the name T reports through TableNamer, checked on
// both value and pointer receivers. An absent method or an empty name yields
// inflected.
func ResolveTableName[T any](inflected string) string {
	var zero T
	if tn, ok := any(&zero).(TableNamer); ok {
		if name := tn.TableName(); name != "" {
			return name
		}
	}
	return inflected
}
