package parse

import "strings"

// Priority is the visual severity derived from a report description.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityWarning  Priority = "WARNING"
	PriorityCosmetic Priority = "COSMETIC"
	PriorityDefault  Priority = "DEFAULT"
)

// priorityRules are checked in order; the first rule with a matching keyword wins.
var priorityRules = []struct {
	priority Priority
	keywords []string
}{
	{PriorityCritical, []string{"urgente", "fuga", "peligro", "inundación"}},
	{PriorityWarning, []string{"no funciona", "falla"}},
	{PriorityCosmetic, []string{"pintura", "estético"}},
}

// ClassifyPriority scans the description case-insensitively for the known
// keywords. It is never persisted.
func ClassifyPriority(description string) Priority {
	d := strings.ToLower(description)
	for _, rule := range priorityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(d, kw) {
				return rule.priority
			}
		}
	}
	return PriorityDefault
}
