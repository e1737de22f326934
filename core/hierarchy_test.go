package core

import (
	"reflect"
	"testing"
)

func TestGetRolesAtOrAbove(t *testing.T) {
	tests := []struct {
		role     Role
		expected []Role
	}{
		{RoleAdmin, []Role{RoleAdmin}},
		{RoleModerator, []Role{RoleModerator, RoleAdmin}},
		{RoleServiceProvider, []Role{RoleServiceProvider, RoleModerator, RoleAdmin}},
		{RoleClient, []Role{RoleClient, RoleModerator, RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := GetRolesAtOrAbove(tt.role)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("GetRolesAtOrAbove(%q) = %v, expected %v", tt.role, got, tt.expected)
			}
		})
	}
}

// Với mọi role: chứa chính nó, kết thúc ở admin, ngắn dần khi đi lên root
func TestGetRolesAtOrAbove_Properties(t *testing.T) {
	for _, role := range RoleValues() {
		chain := GetRolesAtOrAbove(role)
		if chain[0] != role {
			t.Errorf("chain of %q must start with itself, got %v", role, chain)
		}
		if chain[len(chain)-1] != RoleAdmin {
			t.Errorf("chain of %q must end with admin, got %v", role, chain)
		}
		def := GetRoleConfig(role)
		if def.IsRoot() {
			if len(chain) != 1 {
				t.Errorf("root chain must have length 1, got %v", chain)
			}
			continue
		}
		parentChain := GetRolesAtOrAbove(def.Parent)
		if len(parentChain) != len(chain)-1 {
			t.Errorf("chain of parent %q should be one shorter than chain of %q: %v vs %v",
				def.Parent, role, parentChain, chain)
		}
	}
}

func TestGetRolesAtOrAbove_Idempotent(t *testing.T) {
	first := GetRolesAtOrAbove(RoleClient)
	first[0] = RoleAdmin
	for i := 0; i < 3; i++ {
		got := GetRolesAtOrAbove(RoleClient)
		if !reflect.DeepEqual(got, []Role{RoleClient, RoleModerator, RoleAdmin}) {
			t.Fatalf("call %d returned %v", i, got)
		}
	}
}

func TestGetRolesAtOrAbove_UnknownRolePanics(t *testing.T) {
	expectPanic(t, "GetRolesAtOrAbove(editor)", func() {
		GetRolesAtOrAbove("editor")
	})
}

// Registry dựng tay (bỏ qua kiểm tra) có chu trình: vòng lặp phải dừng ở giới hạn số role
func TestRolesAtOrAbove_CycleCapPanics(t *testing.T) {
	r := &registry{
		defs: []RoleDefinition{
			{Value: "a", Parent: "b"},
			{Value: "b", Parent: "a"},
		},
		index: map[Role]int{"a": 0, "b": 1},
	}
	expectPanic(t, "cyclic chain", func() {
		r.rolesAtOrAbove("a")
	})
}

func TestDominates(t *testing.T) {
	tests := []struct {
		a, b     Role
		expected bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleModerator, true},
		{RoleAdmin, RoleClient, true},
		{RoleAdmin, RoleServiceProvider, true},
		{RoleModerator, RoleClient, true},
		{RoleModerator, RoleServiceProvider, true},
		{RoleModerator, RoleAdmin, false},
		{RoleClient, RoleClient, true},
		{RoleClient, RoleServiceProvider, false},
		{RoleServiceProvider, RoleClient, false},
		{RoleClient, RoleModerator, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.a)+">="+string(tt.b), func(t *testing.T) {
			if got := Dominates(tt.a, tt.b); got != tt.expected {
				t.Errorf("Dominates(%q, %q) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestGetRolesAtOrBelow(t *testing.T) {
	tests := []struct {
		role     Role
		expected []Role
	}{
		{RoleAdmin, []Role{RoleAdmin, RoleModerator, RoleServiceProvider, RoleClient}},
		{RoleModerator, []Role{RoleModerator, RoleServiceProvider, RoleClient}},
		{RoleClient, []Role{RoleClient}},
		{RoleServiceProvider, []Role{RoleServiceProvider}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := GetRolesAtOrBelow(tt.role)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("GetRolesAtOrBelow(%q) = %v, expected %v", tt.role, got, tt.expected)
			}
		})
	}
}
