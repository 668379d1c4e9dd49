package main

import "testing"

func TestAllCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"serve":          false,
		"seed":           false,
		"adjust-rates":   false,
		"update-phone":   false,
		"delete-jobs":    false,
		"delete-members": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("command %s not registered", name)
		}
	}
}

func TestMaintenanceCommandArgCounts(t *testing.T) {
	cases := []struct {
		name string
		args []string
		ok   bool
	}{
		{"update-phone", []string{"Arman", "Armanov", "+77773414141"}, true},
		{"update-phone", []string{"Arman"}, false},
		{"delete-jobs", []string{"Amina", "Aminova"}, true},
		{"delete-jobs", []string{}, false},
		{"delete-members", []string{"Kabanbay Batyr"}, true},
		{"delete-members", []string{"a", "b"}, false},
	}
	for _, tc := range cases {
		cmd, _, err := rootCmd.Find([]string{tc.name})
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		err = cmd.Args(cmd, tc.args)
		if tc.ok && err != nil {
			t.Fatalf("%s %v: unexpected arg error %v", tc.name, tc.args, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s %v: expected arg count rejection", tc.name, tc.args)
		}
	}
}
