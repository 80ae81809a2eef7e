package scoring

import "testing"

func TestAllocateBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []BPSScore
		want   map[string]int
	}{
		{
			name:   "distinct scores",
			scores: []BPSScore{{"a", 30}, {"b", 50}, {"c", 40}, {"d", 10}},
			want:   map[string]int{"a": 1, "b": 3, "c": 2, "d": 0},
		},
		{
			name:   "tie at the top compresses the next award",
			scores: []BPSScore{{"p1", 50}, {"p2", 50}, {"p3", 40}, {"p4", 30}},
			want:   map[string]int{"p1": 3, "p2": 3, "p3": 2, "p4": 0},
		},
		{
			name:   "tie for second",
			scores: []BPSScore{{"p1", 50}, {"p2", 40}, {"p3", 40}, {"p4", 30}},
			want:   map[string]int{"p1": 3, "p2": 2, "p3": 2, "p4": 0},
		},
		{
			name:   "tie for third shares the award",
			scores: []BPSScore{{"p1", 50}, {"p2", 40}, {"p3", 30}, {"p4", 30}, {"p5", 20}},
			want:   map[string]int{"p1": 3, "p2": 2, "p3": 1, "p4": 1, "p5": 0},
		},
		{
			name:   "three-way tie at the top",
			scores: []BPSScore{{"p1", 50}, {"p2", 50}, {"p3", 50}, {"p4", 45}},
			want:   map[string]int{"p1": 3, "p2": 3, "p3": 3, "p4": 0},
		},
		{
			name:   "duplicate player keeps best bps",
			scores: []BPSScore{{"p1", 10}, {"p2", 20}, {"p1", 30}},
			want:   map[string]int{"p1": 3, "p2": 2},
		},
		{
			name:   "empty match",
			scores: nil,
			want:   map[string]int{},
		},
	}

	for _, tc := range tests {
		got := AllocateBonus(tc.scores)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		for playerID, want := range tc.want {
			if got[playerID] != want {
				t.Fatalf("%s: bonus[%s] = %d, want %d (all %v)", tc.name, playerID, got[playerID], want, got)
			}
		}
	}
}

func TestRulesAllocateBonus_CustomAwards(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.BonusAwards = []int{5, 3}

	got := rules.AllocateBonus([]BPSScore{{"p1", 9}, {"p2", 8}, {"p3", 7}})
	if got["p1"] != 5 || got["p2"] != 3 || got["p3"] != 0 {
		t.Fatalf("unexpected allocation: %v", got)
	}
}
