// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package nameparse

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ParsedName
	}{
		{
			name: "two tokens",
			raw:  "John Smith",
			want: ParsedName{FirstName: "John", LastName: "Smith"},
		},
		{
			name: "single token",
			raw:  "Madonna",
			want: ParsedName{FirstName: "Madonna"},
		},
		{
			name: "three tokens",
			raw:  "John Michael Smith",
			want: ParsedName{FirstName: "John", MiddleName: "Michael", LastName: "Smith"},
		},
		{
			name: "multiple middle tokens joined",
			raw:  "John Michael Robert Smith",
			want: ParsedName{FirstName: "John", MiddleName: "Michael Robert", LastName: "Smith"},
		},
		{
			name: "title stripped",
			raw:  "Dr. John Smith",
			want: ParsedName{FirstName: "John", LastName: "Smith"},
		},
		{
			name: "title without period stripped",
			raw:  "mrs Jane Doe",
			want: ParsedName{FirstName: "Jane", LastName: "Doe"},
		},
		{
			name: "suffix stripped",
			raw:  "John Smith Jr.",
			want: ParsedName{FirstName: "John", LastName: "Smith"},
		},
		{
			name: "title and suffix stripped",
			raw:  "Dr. John Smith MD",
			want: ParsedName{FirstName: "John", LastName: "Smith"},
		},
		{
			name: "only title yields empty",
			raw:  "Dr.",
			want: ParsedName{},
		},
		{
			name: "empty input",
			raw:  "",
			want: ParsedName{},
		},
		{
			name: "whitespace only",
			raw:  "   ",
			want: ParsedName{},
		},
		{
			name: "literal nan",
			raw:  "nan",
			want: ParsedName{},
		},
		{
			name: "literal None",
			raw:  "None",
			want: ParsedName{},
		},
		{
			name: "extra whitespace between tokens",
			raw:  "  John   Smith ",
			want: ParsedName{FirstName: "John", LastName: "Smith"},
		},
		{
			name: "case preserved on kept tokens",
			raw:  "JOHN smith",
			want: ParsedName{FirstName: "JOHN", LastName: "smith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParsedNameEmpty(t *testing.T) {
	if !(ParsedName{}).Empty() {
		t.Error("zero ParsedName should report Empty")
	}
	if (ParsedName{FirstName: "John"}).Empty() {
		t.Error("ParsedName with a first name should not report Empty")
	}
}
