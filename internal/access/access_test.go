package access

import (
	"testing"

	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
)

func fixtureState() *document.AppState {
	return &document.AppState{
		AdminAccessCode: "Admin2024",
		Collections: []document.Collection{
			{ID: "c1", AccessCode: "SPRING"},
			{ID: "c2", AccessCode: "spring"},
			{ID: "c3", AccessCode: "WINTER"},
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantOK   bool
		wantRole enums.ActorRole
		wantColl string
	}{
		{name: "admin exact", code: "Admin2024", wantOK: true, wantRole: enums.ActorRoleAdmin},
		{name: "admin case-insensitive", code: "ADMIN2024", wantOK: true, wantRole: enums.ActorRoleAdmin},
		{name: "admin padded", code: "  admin2024\n", wantOK: true, wantRole: enums.ActorRoleAdmin},
		{name: "influencer exact", code: "WINTER", wantOK: true, wantRole: enums.ActorRoleInfluencer, wantColl: "c3"},
		{name: "influencer case-insensitive", code: "winter", wantOK: true, wantRole: enums.ActorRoleInfluencer, wantColl: "c3"},
		{name: "duplicate code picks first in array order", code: "Spring", wantOK: true, wantRole: enums.ActorRoleInfluencer, wantColl: "c1"},
		{name: "unknown code", code: "nope", wantOK: false},
		{name: "empty code", code: "   ", wantOK: false},
	}

	state := fixtureState()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, ok := Resolve(tc.code, state)
			if ok != tc.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.code, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if out.Role != tc.wantRole {
				t.Fatalf("Resolve(%q) role = %v, want %v", tc.code, out.Role, tc.wantRole)
			}
			if out.CollectionID != tc.wantColl {
				t.Fatalf("Resolve(%q) collection = %q, want %q", tc.code, out.CollectionID, tc.wantColl)
			}
		})
	}
}

func TestResolveAdminWinsOverCollidingCollectionCode(t *testing.T) {
	state := &document.AppState{
		AdminAccessCode: "shared",
		Collections:     []document.Collection{{ID: "c1", AccessCode: "SHARED"}},
	}

	out, ok := Resolve("Shared", state)
	if !ok || out.Role != enums.ActorRoleAdmin {
		t.Fatalf("Resolve = %+v (ok=%v), want admin match", out, ok)
	}
	if out.CollectionID != "" {
		t.Fatalf("admin outcome must not carry a collection, got %q", out.CollectionID)
	}
}

func TestResolveBlankInputNeverAuthenticates(t *testing.T) {
	state := &document.AppState{AdminAccessCode: "  "}
	if _, ok := Resolve("  ", state); ok {
		t.Fatal("blank input must never authenticate")
	}
}
