package core

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func principal(id string, role Role) Principal {
	return NewPrincipal(id, role)
}

func TestIsRoleAtOrHigher(t *testing.T) {
	tests := []struct {
		name      string
		threshold Role
		p         Principal
		expected  bool
	}{
		{"admin thỏa moderator", RoleModerator, principal("1", RoleAdmin), true},
		{"moderator không thỏa admin", RoleAdmin, principal("1", RoleModerator), false},
		{"moderator thỏa moderator", RoleModerator, principal("1", RoleModerator), true},
		{"client không thỏa moderator", RoleModerator, principal("1", RoleClient), false},
		{"service-provider không thỏa moderator", RoleModerator, principal("1", RoleServiceProvider), false},
		{"sibling không dominate nhau", RoleClient, principal("1", RoleServiceProvider), false},
		{"moderator thỏa service-provider", RoleServiceProvider, principal("1", RoleModerator), true},
		{"admin thỏa client", RoleClient, principal("1", RoleAdmin), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRoleAtOrHigher(tt.threshold, tt.p); got != tt.expected {
				t.Errorf("IsRoleAtOrHigher(%q, %q) = %v, expected %v", tt.threshold, tt.p.RoleValue(), got, tt.expected)
			}
		})
	}
}

// Role con của moderator không đạt ngưỡng moderator: ngưỡng chỉ được thỏa bởi
// chính role đó hoặc tổ tiên của nó.
func TestIsRoleAtOrHigher_ChildRolesBelowModerator(t *testing.T) {
	tests := []struct {
		name string
		role Role
	}{
		{"isRoleAtOrHigher(moderator, service-provider) là false", RoleServiceProvider},
		{"isRoleAtOrHigher(moderator, client) là false", RoleClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsRoleAtOrHigher(RoleModerator, principal("1", tt.role)) {
				t.Errorf("IsRoleAtOrHigher(%q, %q) = true, expected false", RoleModerator, tt.role)
			}
			if !Dominates(RoleModerator, tt.role) {
				t.Errorf("Dominates(%q, %q) = false, moderator must still dominate its children", RoleModerator, tt.role)
			}
		})
	}
}

// Khách chưa đăng nhập không bao giờ qua được
func TestIsRoleAtOrHigher_Anonymous(t *testing.T) {
	for _, threshold := range RoleValues() {
		if IsRoleAtOrHigher(threshold, Anonymous()) {
			t.Errorf("anonymous passed threshold %q", threshold)
		}
	}
}

func TestIsRoleAtOrHigher_UnknownThresholdPanics(t *testing.T) {
	expectPanic(t, "unknown threshold", func() {
		IsRoleAtOrHigher("owner", principal("1", RoleAdmin))
	})
	bogus := Role("root")
	expectPanic(t, "unknown principal role", func() {
		IsRoleAtOrHigher(RoleClient, Principal{ID: "1", Role: &bogus})
	})
}

func TestCheckRole(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []Role
		p        Principal
		expected bool
	}{
		{"exact membership, không xét cây", []Role{RoleAdmin, RoleModerator}, principal("1", RoleServiceProvider), false},
		{"member", []Role{RoleAdmin, RoleModerator}, principal("1", RoleModerator), true},
		{"admin không tự động thỏa", []Role{RoleModerator}, principal("1", RoleAdmin), false},
		{"anonymous", []Role{RoleClient}, Anonymous(), false},
		{"empty allowlist", nil, principal("1", RoleAdmin), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckRole(tt.allowed, tt.p); got != tt.expected {
				t.Errorf("CheckRole(%v, %q) = %v, expected %v", tt.allowed, tt.p.RoleValue(), got, tt.expected)
			}
		})
	}
}

func TestEvaluate_MinimumRole(t *testing.T) {
	policy := MinimumRole(RoleModerator)

	tests := []struct {
		name     string
		p        Principal
		expected Decision
	}{
		{"admin", principal("1", RoleAdmin), Allow()},
		{"moderator", principal("1", RoleModerator), Allow()},
		{"client", principal("1", RoleClient), Deny(ReasonInsufficientRole)},
		{"anonymous", Anonymous(), Deny(ReasonUnauthenticated)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(policy, tt.p, nil)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Evaluate(%s) = %+v, expected %+v", policy, got, tt.expected)
			}
		})
	}
}

func TestEvaluate_MinimumRoleOrOwner(t *testing.T) {
	policy := MinimumRoleOrOwner(RoleAdmin, "userId")
	client := principal("7", RoleClient)

	t.Run("owner của record - allow", func(t *testing.T) {
		got := Evaluate(policy, client, MapRecord{"userId": 7})
		if !got.IsAllowed() {
			t.Errorf("expected Allow, got %+v", got)
		}
	})

	t.Run("không phải owner - deny", func(t *testing.T) {
		got := Evaluate(policy, client, MapRecord{"userId": 8})
		if !got.IsDenied() || got.Reason != ReasonNotOwner {
			t.Errorf("expected Deny(not_owner), got %+v", got)
		}
	})

	t.Run("không có record - trả về filter", func(t *testing.T) {
		got := Evaluate(policy, client, nil)
		if !got.IsConditional() {
			t.Fatalf("expected AllowIf, got %+v", got)
		}
		if got.IsAllowed() {
			t.Error("AllowIf must not report IsAllowed")
		}
		expected := Filter{Field: "userId", Value: "7"}
		if *got.Filter != expected {
			t.Errorf("filter = %+v, expected %+v", *got.Filter, expected)
		}
	})

	t.Run("role đủ - allow không cần filter", func(t *testing.T) {
		got := Evaluate(policy, principal("1", RoleAdmin), nil)
		if !got.IsAllowed() || got.Filter != nil {
			t.Errorf("expected plain Allow, got %+v", got)
		}
	})

	t.Run("anonymous - deny cả khi không có record", func(t *testing.T) {
		got := Evaluate(policy, Anonymous(), nil)
		if !got.IsDenied() || got.Reason != ReasonUnauthenticated {
			t.Errorf("expected Deny(unauthenticated), got %+v", got)
		}
	})

	t.Run("principal không có ID - deny not_owner", func(t *testing.T) {
		noID := Principal{Role: client.Role}
		for _, record := range []Record{nil, MapRecord{"userId": ""}} {
			got := Evaluate(policy, noID, record)
			if !got.IsDenied() || got.Reason != ReasonNotOwner {
				t.Errorf("Evaluate(record=%v) = %+v, expected Deny(not_owner)", record, got)
			}
		}
	})

	t.Run("record thiếu owner field - deny", func(t *testing.T) {
		got := Evaluate(policy, client, MapRecord{"title": "x"})
		if !got.IsDenied() {
			t.Errorf("expected Deny, got %+v", got)
		}
	})
}

func TestEvaluate_OwnerValueNormalization(t *testing.T) {
	id := uuid.MustParse("4f4a8ad6-7a3b-4e34-9d7c-1a1b2f3e4d5c")
	str := "abc123"

	tests := []struct {
		name     string
		pid      string
		value    any
		expected bool
	}{
		{"string", "abc123", "abc123", true},
		{"string pointer", "abc123", &str, true},
		{"int64", "42", int64(42), true},
		{"uint", "42", uint(42), true},
		{"float từ JSON", "42", float64(42), true},
		{"float lẻ", "42", 42.5, false},
		{"uuid", id.String(), id, true},
		{"nil", "42", nil, false},
		{"empty string không khớp", "", "", false},
		{"khác nhau", "42", "43", false},
	}

	policy := MinimumRoleOrOwner(RoleModerator, "owner")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Principal{ID: tt.pid, Role: principal("x", RoleClient).Role}
			got := Evaluate(policy, p, MapRecord{"owner": tt.value})
			if got.IsAllowed() != tt.expected {
				t.Errorf("owner match for %#v = %v, expected %v (decision %+v)", tt.value, got.IsAllowed(), tt.expected, got)
			}
		})
	}
}

func TestEvaluate_StructRecord(t *testing.T) {
	type Base struct {
		ID string `json:"id"`
	}
	type offer struct {
		Base
		UserID string `json:"userId"`
		Secret string `json:"-"`
	}

	o := &offer{Base: Base{ID: "o1"}, UserID: "u1"}
	record := NewStructRecord(o)

	if v, ok := record.Field("userId"); !ok || v != "u1" {
		t.Errorf("Field(userId) = %v, %v", v, ok)
	}
	if v, ok := record.Field("id"); !ok || v != "o1" {
		t.Errorf("Field(id) through embedded struct = %v, %v", v, ok)
	}
	if _, ok := record.Field("Secret"); ok {
		t.Error("json:\"-\" field must not be visible")
	}

	got := Evaluate(MinimumRoleOrOwner(RoleModerator, "userId"), principal("u1", RoleServiceProvider), record)
	if !got.IsAllowed() {
		t.Errorf("expected owner to be allowed, got %+v", got)
	}

	var nilOffer *offer
	if NewStructRecord(nilOffer) != nil {
		t.Error("NewStructRecord(nil pointer) must return nil")
	}
}

func TestEvaluate_PublicAndAuthenticated(t *testing.T) {
	if !Evaluate(Public(), Anonymous(), nil).IsAllowed() {
		t.Error("public must allow anonymous")
	}
	if got := Evaluate(Authenticated(), Anonymous(), nil); got.Reason != ReasonUnauthenticated {
		t.Errorf("authenticated must deny anonymous, got %+v", got)
	}
	if !Evaluate(Authenticated(), principal("1", RoleClient), nil).IsAllowed() {
		t.Error("authenticated must allow any role")
	}
}

func TestEvaluate_UndeclaredPolicyPanics(t *testing.T) {
	expectPanic(t, "zero policy", func() {
		Evaluate(Policy{}, principal("1", RoleAdmin), nil)
	})
	expectPanic(t, "unknown role in policy", func() {
		MinimumRole("owner")
	})
	expectPanic(t, "missing owner field", func() {
		MinimumRoleOrOwner(RoleAdmin, "")
	})
}

// Hàm thuần: cùng input luôn cho cùng output
func TestEvaluate_Idempotent(t *testing.T) {
	policy := MinimumRoleOrOwner(RoleModerator, "userId")
	p := principal("7", RoleClient)
	first := Evaluate(policy, p, nil)
	for i := 0; i < 5; i++ {
		if got := Evaluate(policy, p, nil); !reflect.DeepEqual(got, first) {
			t.Fatalf("call %d returned %+v, expected %+v", i, got, first)
		}
	}
}

func TestCheckRoleAssignment(t *testing.T) {
	tests := []struct {
		name     string
		actor    Principal
		target   Role
		expected Decision
	}{
		{"moderator gán admin - deny", principal("1", RoleModerator), RoleAdmin, Deny(ReasonProtectedRole)},
		{"moderator gán moderator - deny", principal("1", RoleModerator), RoleModerator, Deny(ReasonProtectedRole)},
		{"admin gán admin - allow", principal("1", RoleAdmin), RoleAdmin, Allow()},
		{"moderator gán client - allow", principal("1", RoleModerator), RoleClient, Allow()},
		{"anonymous đăng ký service-provider - allow", Anonymous(), RoleServiceProvider, Allow()},
		{"anonymous đăng ký moderator - deny", Anonymous(), RoleModerator, Deny(ReasonProtectedRole)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckRoleAssignment(tt.actor, tt.target)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("CheckRoleAssignment(%q, %q) = %+v, expected %+v", tt.actor.RoleValue(), tt.target, got, tt.expected)
			}
		})
	}
}

func TestDecision_Err(t *testing.T) {
	tests := []struct {
		d        Decision
		expected error
	}{
		{Allow(), nil},
		{AllowIf(Filter{Field: "userId", Value: "1"}), ErrFilterRequired},
		{Deny(ReasonProtectedRole), ErrProtectedRole},
		{Deny(ReasonUnauthenticated), ErrUnauthenticated},
		{Deny(ReasonNotOwner), ErrNotOwner},
		{Deny(ReasonInsufficientRole), ErrInsufficientRole},
	}

	for _, tt := range tests {
		if err := tt.d.Err(); !errors.Is(err, tt.expected) {
			t.Errorf("%+v.Err() = %v, expected %v", tt.d, err, tt.expected)
		}
	}
}

func TestFilter_Matches(t *testing.T) {
	f := Filter{Field: "userId", Value: "u1"}
	if !f.Matches(MapRecord{"userId": "u1"}) {
		t.Error("expected match")
	}
	if f.Matches(MapRecord{"userId": "u2"}) {
		t.Error("expected no match")
	}
	if f.Matches(nil) {
		t.Error("nil record must not match")
	}
}
