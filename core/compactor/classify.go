package compactor

import "strings"

const (
	// DefaultTypeField is the record field that carries the type identifier.
	DefaultTypeField = "resource_type"
	// DefaultTypeTemplate rebuilds a type identifier from its tag.
	DefaultTypeTemplate = "https://common.terraphim.io/01jxw2jx8qze6yakh4fz24mnhy/class/{tag}-step"

	tagPlaceholder = "{tag}"
)

// TypeTag derives the grouping tag from a type identifier: the last
// "/"-separated segment, without a trailing "-step", hyphens as underscores.
func TypeTag(typeID string) string {
	seg := typeID
	if i := strings.LastIndexByte(typeID, '/'); i >= 0 {
		seg = typeID[i+1:]
	}
	seg = strings.TrimSuffix(seg, "-step")
	return strings.ReplaceAll(seg, "-", "_")
}

// ExpandTypeTag fills template with tag, underscores turned back into hyphens.
func ExpandTypeTag(template, tag string) string {
	return strings.ReplaceAll(template, tagPlaceholder, strings.ReplaceAll(tag, "_", "-"))
}

// ResourceGroup holds the records of one type tag in classification order.
type ResourceGroup struct {
	Tag     string
	Records []*Record
	// Templated is true when every record's type identifier equals the
	// template expansion of Tag, so the type field need not be stored.
	Templated bool
}

// Classify groups records by the TypeTag of their type field. Records whose
// type field is missing or not a string are dropped and counted. Groups are
// returned in first-seen order.
func Classify(records []*Record, typeField, template string) (groups []*ResourceGroup, dropped int) {
	byTag := make(map[string]*ResourceGroup)
	for _, rec := range records {
		v, ok := rec.Get(typeField)
		if !ok {
			dropped++
			continue
		}
		typeID, ok := v.AsString()
		if !ok {
			dropped++
			continue
		}
		tag := TypeTag(typeID)
		g, ok := byTag[tag]
		if !ok {
			g = &ResourceGroup{Tag: tag, Templated: true}
			byTag[tag] = g
			groups = append(groups, g)
		}
		if typeID != ExpandTypeTag(template, tag) {
			g.Templated = false
		}
		g.Records = append(g.Records, rec)
	}
	return groups, dropped
}
