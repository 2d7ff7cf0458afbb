package learning

import (
	"strings"

	"lms_backend/internal/model"
)

// FilterResources narrows a module's resource list by a free-text term over
// title and description and by exact type. Empty term or type means no
// filter on that axis.
func FilterResources(resources []model.ModuleResource, term string, typ model.ResourceType) []model.ModuleResource {
	term = strings.ToLower(term)
	var out []model.ModuleResource
	for _, r := range resources {
		if typ != "" && r.Type != typ {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GroupResourcesByType is a derived display view; input order is kept
// within each group.
func GroupResourcesByType(resources []model.ModuleResource) map[model.ResourceType][]model.ModuleResource {
	groups := make(map[model.ResourceType][]model.ModuleResource)
	for _, r := range resources {
		groups[r.Type] = append(groups[r.Type], r)
	}
	return groups
}
