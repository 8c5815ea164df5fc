package main

import "testing"

func TestParseCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []string
		want    command
		wantErr bool
	}{
		{name: "up", args: []string{"UP"}, want: command{name: "up"}},
		{name: "seed", args: []string{"seed"}, want: command{name: "seed"}},
		{name: "down default", args: []string{"down"}, want: command{name: "down", steps: 1}},
		{name: "down steps", args: []string{"down", "3"}, want: command{name: "down", steps: 3}},
		{name: "down zero", args: []string{"down", "0"}, wantErr: true},
		{name: "force", args: []string{"force", "1771776035"}, want: command{name: "force", version: 1771776035}},
		{name: "force missing", args: []string{"force"}, wantErr: true},
		{name: "migrate alias", args: []string{"migrate", "1771776034"}, want: command{name: "goto", target: 1771776034}},
		{name: "goto negative", args: []string{"goto", "-1"}, wantErr: true},
		{name: "unknown", args: []string{"drop"}, wantErr: true},
		{name: "empty", args: nil, wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseCommand(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse command: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected command: got=%+v want=%+v", got, tc.want)
			}
		})
	}
}
