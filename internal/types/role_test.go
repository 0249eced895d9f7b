package types

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":    RoleAdmin,
		"admin":    RoleAdmin,
		" analyst": RoleAnalyst,
		"Operator": RoleOperator,
		"user":     RoleUser,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if _, err := ParseRole(""); err == nil {
		t.Fatal("expected error for empty role")
	}
}

func TestRoleOrdering(t *testing.T) {
	ordered := []Role{RoleUser, RoleOperator, RoleAnalyst, RoleAdmin}
	for i, lower := range ordered {
		for j, higher := range ordered {
			got := higher.Meets(lower)
			want := j >= i
			if got != want {
				t.Errorf("%s.Meets(%s) = %v, want %v", higher, lower, got, want)
			}
		}
	}
}

func TestAdminMeetsEverything(t *testing.T) {
	for _, min := range []Role{RoleUser, RoleOperator, RoleAnalyst, RoleAdmin} {
		if !RoleAdmin.Meets(min) {
			t.Errorf("admin should satisfy %s", min)
		}
	}
	if RoleUser.Meets(RoleOperator) {
		t.Error("user must not satisfy operator")
	}
}
