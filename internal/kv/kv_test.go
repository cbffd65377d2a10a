package kv

import "testing"

func TestKey(t *testing.T) {
	cases := []struct {
		namespace string
		ownerID   int64
		want      string
	}{
		{"offline_cash_expenses", 7, "offline_cash_expenses_7"},
		{"savingGoals", 42, "savingGoals_42"},
		{"savingGoals", 0, "savingGoals_0"},
	}
	for _, tc := range cases {
		if got := Key(tc.namespace, tc.ownerID); got != tc.want {
			t.Fatalf("Key(%q, %d) = %q, want %q", tc.namespace, tc.ownerID, got, tc.want)
		}
	}
}
