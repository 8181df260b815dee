// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
		not  []string
	}{
		{
			name: "emphasis and links",
			in:   "We **doubled** revenue with [our tool](https://example.com).",
			want: []string{"We doubled revenue with our tool."},
			not:  []string{"**", "](", "https://example.com"},
		},
		{
			name: "headings and lists",
			in:   "# The Problem\n\n- slow invoicing\n- no visibility\n",
			want: []string{"The Problem", "slow invoicing", "no visibility"},
			not:  []string{"#", "- "},
		},
		{
			name: "raw html dropped",
			in:   "Intro text.\n\n<div>hidden</div>\n\nOutro.",
			want: []string{"Intro text.", "Outro."},
			not:  []string{"<div>", "hidden"},
		},
		{
			name: "soft break becomes space",
			in:   "line one\nline two",
			want: []string{"line one line two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPlainText(tt.in)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToPlainText(%q) = %q, missing %q", tt.in, got, w)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(got, n) {
					t.Errorf("ToPlainText(%q) = %q, should not contain %q", tt.in, got, n)
				}
			}
		})
	}
}

func TestInlineHTML(t *testing.T) {
	got, err := InlineHTML("Cut costs by **40%**")
	if err != nil {
		t.Fatalf("InlineHTML: %v", err)
	}
	if got != "Cut costs by <strong>40%</strong>" {
		t.Errorf("InlineHTML = %q", got)
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	got, err := ToHTML("<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}
