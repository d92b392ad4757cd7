// Package symbol implements the atom interning table.  Equal text always
// interns to an identical ID so atoms can be compared by identity alone.
package symbol

// String returns the text interned as id in table.  String otherwise returns
// a diagnostic string describing id.
func String(id ID, table Table) string {
	s, _ := ResolveUnknown(defaultUnknownResolverFormat, table).Symbol(id)
	return s
}
