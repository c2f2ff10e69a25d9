package domain

import "testing"

func sampleUsers() []User {
	return []User{
		{ID: "1", DisplayID: "USR-0001", Email: "alice@fydblock.com", FullName: "Alice Ahn", Status: UserStatusActive},
		{ID: "2", DisplayID: "USR-0002", Email: "bob@example.com", FullName: "Bob Brandt", Status: UserStatusSuspended},
		{ID: "3", DisplayID: "USR-0003", Email: "carol@example.com", FullName: "Carol Chu", Status: UserStatusActive},
	}
}

func TestFilterFreeText(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term keeps everything", term: "", want: []string{"1", "2", "3"}},
		{name: "matches email", term: "alice@", want: []string{"1"}},
		{name: "case insensitive", term: "BOB", want: []string{"2"}},
		{name: "matches full name", term: "chu", want: []string{"3"}},
		{name: "matches display id", term: "usr-000", want: []string{"1", "2", "3"}},
		{name: "no match", term: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleUsers(), tt.term, FilterStatusAll)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i, u := range got {
				if u.ID != tt.want[i] {
					t.Errorf("result %d: got ID %s, want %s", i, u.ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilterStatusExactMatch(t *testing.T) {
	users := sampleUsers()

	got := Filter(users, "", UserStatusSuspended)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("suspended filter: got %v", got)
	}

	// Status comparison is exact, not substring.
	if got := Filter(users, "", "Active nonsense"); len(got) != 0 {
		t.Errorf("bogus status matched %d users", len(got))
	}

	// "all" and empty both disable the status filter.
	if got := Filter(users, "", ""); len(got) != 3 {
		t.Errorf("empty status: got %d, want 3", len(got))
	}
	if got := Filter(users, "", FilterStatusAll); len(got) != 3 {
		t.Errorf("all status: got %d, want 3", len(got))
	}
}

func TestFilterCombinedAndOrderPreserving(t *testing.T) {
	got := Filter(sampleUsers(), "example.com", UserStatusActive)
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("combined filter: got %v", got)
	}

	all := Filter(sampleUsers(), "", FilterStatusAll)
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatal("filter reordered items")
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	users := sampleUsers()
	Filter(users, "alice", UserStatusActive)
	if users[0].ID != "1" || len(users) != 3 {
		t.Fatal("input slice was mutated")
	}
}

func TestFilterLogsByLevel(t *testing.T) {
	logs := []LogEntry{
		{ID: "a", Level: LogLevelError, Message: "boom"},
		{ID: "b", Level: LogLevelInfo, Message: "ok"},
		{ID: "c", Level: LogLevelWarning, Message: "meh"},
	}
	got := Filter(logs, "", LogLevelError)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("level filter: got %v", got)
	}
}
