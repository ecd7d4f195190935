package tg

import (
	"testing"

	"github.com/larriantoniy/tg_intake_bot/internal/domain"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in  string
		cmd string
		ok  bool
	}{
		{"/start", "start", true},
		{"/cancel extra args", "cancel", true},
		{"/USERS", "users", true},
		{"/users@intake_bot", "users", true},
		{"  /start  ", "start", true},
		{"hello", "", false},
		{"не команда /start", "", false},
		{"/", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		cmd, ok := parseCommand(tc.in)
		if cmd != tc.cmd || ok != tc.ok {
			t.Fatalf("parseCommand(%q) = (%q, %v), want (%q, %v)", tc.in, cmd, ok, tc.cmd, tc.ok)
		}
	}
}

func TestParseTextUpdate(t *testing.T) {
	upd := parseTextUpdate(10, "/start")
	if upd.Kind != domain.KindCommand || upd.Command != "start" || upd.ChatID != 10 {
		t.Fatalf("unexpected command update: %+v", upd)
	}

	upd = parseTextUpdate(10, "Ivan Petrov")
	if upd.Kind != domain.KindText || upd.Text != "Ivan Petrov" {
		t.Fatalf("unexpected text update: %+v", upd)
	}
}
