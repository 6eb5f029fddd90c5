package shell

import (
	"testing"

	"github.com/twiced-technology-gmbh/taskrank/internal/clierr"
)

func TestParseCommands(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"", Command{Kind: KindNoOp}},
		{"   ", Command{Kind: KindNoOp}},
		{"new", Command{Kind: KindNew}},
		{"CREATE", Command{Kind: KindNew}},
		{"remove 2", Command{Kind: KindRemove, Index: 2}},
		{"rm 0", Command{Kind: KindRemove, Index: 0}},
		{"edit 1", Command{Kind: KindEdit, Index: 1}},
		{"tick", Command{Kind: KindTick}},
		{"tick 3", Command{Kind: KindTick, Days: 3, HasDays: true}},
		{"list", Command{Kind: KindList}},
		{"help", Command{Kind: KindHelp}},
		{"exit", Command{Kind: KindQuit}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code string
	}{
		{"frobnicate", clierr.UnknownCommand},
		{"new extra", clierr.InvalidInput},
		{"list all", clierr.InvalidInput},
		{"quit now", clierr.InvalidInput},
		{"remove", clierr.InvalidInput},
		{"remove 1 2", clierr.InvalidInput},
		{"edit", clierr.InvalidInput},
		{"remove x", clierr.InvalidIndex},
		{"edit -1", clierr.InvalidIndex},
		{"tick soon", clierr.InvalidDays},
		{"tick 1 2", clierr.InvalidInput},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		if err == nil {
			t.Fatalf("parse %q: expected error", tc.in)
		}
		if !clierr.HasCode(err, tc.code) {
			t.Fatalf("parse %q error = %v, want code %s", tc.in, err, tc.code)
		}
	}
}
