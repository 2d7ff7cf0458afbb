package learning_test

import (
	"testing"

	"lms_backend/internal/learning"
	"lms_backend/internal/model"
)

func sampleResources() []model.ModuleResource {
	return []model.ModuleResource{
		{ID: "r1", Title: "Pointer Basics", Type: model.PDFResource, Description: "introduction to pointers"},
		{ID: "r2", Title: "Memory Layout", Type: model.VideoResource, Description: "stack and heap"},
		{ID: "r3", Title: "Further Reading", Type: model.LinkResource, Description: "pointer arithmetic deep dive"},
		{ID: "r4", Title: "Lecture Recording", Type: model.VideoResource},
	}
}

func TestFilterResources(t *testing.T) {
	resources := sampleResources()

	tests := []struct {
		name string
		term string
		typ  model.ResourceType
		want []string
	}{
		{"no filter", "", "", []string{"r1", "r2", "r3", "r4"}},
		{"by title", "pointer", "", []string{"r1", "r3"}},
		{"by description", "heap", "", []string{"r2"}},
		{"case-insensitive", "MEMORY", "", []string{"r2"}},
		{"by type", "", model.VideoResource, []string{"r2", "r4"}},
		{"term and type", "recording", model.VideoResource, []string{"r4"}},
		{"no match", "quantum", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := learning.FilterResources(resources, tt.term, tt.typ)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d resources, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.ID != tt.want[i] {
					t.Errorf("result[%d] = %s, want %s", i, r.ID, tt.want[i])
				}
			}
		})
	}
}

func TestGroupResourcesByType(t *testing.T) {
	groups := learning.GroupResourcesByType(sampleResources())

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if len(groups[model.VideoResource]) != 2 {
		t.Errorf("video group has %d entries, want 2", len(groups[model.VideoResource]))
	}
	if groups[model.VideoResource][0].ID != "r2" {
		t.Error("grouping should keep input order within a group")
	}
}
