package nlp_test

import (
	"testing"

	"github.com/artem13815/resumic/pkg/nlp"
)

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"  Acme, Inc.  ":   "acme inc",
		"Senior Engineer®": "senior engineer",
		"CI/CD":            "ci cd",
		"":                 "",
	}
	for in, want := range cases {
		if got := nlp.NormalizeText(in); got != want {
			t.Errorf("NormalizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKey(t *testing.T) {
	if nlp.Key("Acme, Inc.", "Senior Engineer") != "acme inc|senior engineer" {
		t.Errorf("unexpected key: %q", nlp.Key("Acme, Inc.", "Senior Engineer"))
	}
}

func TestCanonicalSkillFoldsAliases(t *testing.T) {
	pairs := [][2]string{
		{"Golang", "Go"},
		{"PostgreSQL", "postgres"},
		{"TS", "TypeScript"},
		{"K8s", "Kubernetes"},
		{"CI/CD", "ci cd"},
	}
	for _, p := range pairs {
		if !nlp.SameSkill(p[0], p[1]) {
			t.Errorf("SameSkill(%q, %q) = false", p[0], p[1])
		}
	}
	if nlp.SameSkill("Go", "Rust") {
		t.Error("Go and Rust should not match")
	}
	if nlp.SameSkill("", "") {
		t.Error("empty skills should not match")
	}
	// slash variants reach the alias table in their space-normalized form
	if got := nlp.CanonicalSkill("CI/CD"); got != "cicd" {
		t.Errorf("CanonicalSkill(CI/CD) = %q, want cicd", got)
	}
}
