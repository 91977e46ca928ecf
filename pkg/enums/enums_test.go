package enums

import "testing"

func TestRoleForGroups(t *testing.T) {
	cases := []struct {
		name   string
		groups []Group
		want   Role
	}{
		{name: "none", groups: nil, want: RoleCustomer},
		{name: "crew", groups: []Group{GroupDeliveryCrew}, want: RoleDeliveryCrew},
		{name: "manager", groups: []Group{GroupManager}, want: RoleManager},
		{name: "both prefers manager", groups: []Group{GroupDeliveryCrew, GroupManager}, want: RoleManager},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleForGroups(tc.groups); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseGroup(t *testing.T) {
	if g, err := ParseGroup("delivery_crew"); err != nil || g != GroupDeliveryCrew {
		t.Fatalf("unexpected parse result %q %v", g, err)
	}
	if _, err := ParseGroup("chef"); err == nil {
		t.Fatal("expected error for unknown group")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if s, err := ParseOrderStatus(1); err != nil || s != OrderStatusDelivered {
		t.Fatalf("unexpected parse result %v %v", s, err)
	}
	if _, err := ParseOrderStatus(2); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if OrderStatusPending.String() != "pending" {
		t.Fatalf("unexpected string %q", OrderStatusPending.String())
	}
}
