package diff

import "strings"

const unlistedPriority = 50

// priorities puts identity-bearing properties first and administrative metadata last.
// Unlisted properties fall between the two groups.
var priorities = map[string]int{
	"catalogname":    0,
	"schemaname":     1,
	"specificname":   2,
	"displayname":    3,
	"name":           4,
	"ordinal":        5,
	"createdat":      100,
	"lastalteredat":  101,
	"displayremarks": 102,
	"remarks":        103,
	"statistics":     104,
	"specifics":      105,
}

// Priority returns the rendering priority of a property name. Lower values render first.
func Priority(property string) int {
	if p, ok := priorities[strings.ToLower(property)]; ok {
		return p
	}
	return unlistedPriority
}
