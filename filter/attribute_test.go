package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/lootfilter/filter"
)

func TestParseAttribute(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		want   filter.AttributeLine
		wantOK bool
	}{
		"operator": {
			input:  "ItemLevel >= 65",
			want:   filter.AttributeLine{Key: "ItemLevel", Operator: ">=", Values: []string{"65"}, Raw: "ItemLevel >= 65"},
			wantOK: true,
		},
		"implicit equality": {
			input:  "ItemLevel 65",
			want:   filter.AttributeLine{Key: "ItemLevel", Values: []string{"65"}, Raw: "ItemLevel 65"},
			wantOK: true,
		},
		"double equals": {
			input:  `BaseType == "Exalted Orb"`,
			want:   filter.AttributeLine{Key: "BaseType", Operator: "==", Values: []string{`"Exalted Orb"`}, Raw: `BaseType == "Exalted Orb"`},
			wantOK: true,
		},
		"quoted multi-word values": {
			input:  `    Class "Stackable Currency" "Currency"`,
			want:   filter.AttributeLine{Key: "Class", Values: []string{`"Stackable Currency"`, `"Currency"`}, Raw: `Class "Stackable Currency" "Currency"`},
			wantOK: true,
		},
		"unknown operator is a value": {
			input:  "Sockets ! 5",
			want:   filter.AttributeLine{Key: "Sockets", Values: []string{"!", "5"}, Raw: "Sockets ! 5"},
			wantOK: true,
		},
		"commas stripped": {
			input:  `SetTextColor ,255, 0 , 0,`,
			want:   filter.AttributeLine{Key: "SetTextColor", Values: []string{"255", "0", "0"}, Raw: "SetTextColor ,255, 0 , 0,"},
			wantOK: true,
		},
		"doubled commas stripped": {
			input:  "SetFontSize ,,45,,",
			want:   filter.AttributeLine{Key: "SetFontSize", Values: []string{"45"}, Raw: "SetFontSize ,,45,,"},
			wantOK: true,
		},
		"repeated spaces": {
			input:  "SetFontSize    45",
			want:   filter.AttributeLine{Key: "SetFontSize", Values: []string{"45"}, Raw: "SetFontSize    45"},
			wantOK: true,
		},
		"tab separated": {
			input:  "SetFontSize\t45",
			want:   filter.AttributeLine{Key: "SetFontSize", Values: []string{"45"}, Raw: "SetFontSize\t45"},
			wantOK: true,
		},
		"key only": {
			input:  "Continue",
			want:   filter.AttributeLine{Key: "Continue", Values: []string{}, Raw: "Continue"},
			wantOK: true,
		},
		"operator without values": {
			input:  "ItemLevel >=",
			want:   filter.AttributeLine{Key: "ItemLevel", Operator: ">=", Values: []string{}, Raw: "ItemLevel >="},
			wantOK: true,
		},
		"unterminated quote absorbs rest": {
			input:  `BaseType "A" "B C`,
			want:   filter.AttributeLine{Key: "BaseType", Values: []string{`"A"`, `"B C`}, Raw: `BaseType "A" "B C`},
			wantOK: true,
		},
		"closing quote followed by text": {
			input:  `BaseType "Chaos Orb "Divine`,
			want:   filter.AttributeLine{Key: "BaseType", Values: []string{`"Chaos Orb "Divine`}, Raw: `BaseType "Chaos Orb "Divine`},
			wantOK: true,
		},
		"unterminated quote at start": {
			input:  `BaseType "Chaos Orb Divine`,
			want:   filter.AttributeLine{Key: "BaseType", Values: []string{`"Chaos Orb Divine`}, Raw: `BaseType "Chaos Orb Divine`},
			wantOK: true,
		},
		"blank": {
			input: "   ",
		},
		"comment": {
			input: "  # SetFontSize 45",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := filter.ParseAttribute(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAttributeLineString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line filter.AttributeLine
		want string
	}{
		"full": {
			line: filter.AttributeLine{Key: "ItemLevel", Operator: ">=", Values: []string{"60"}},
			want: "ItemLevel >= 60",
		},
		"no operator": {
			line: filter.AttributeLine{Key: "Class", Values: []string{`"Rings"`, `"Amulets"`}},
			want: `Class "Rings" "Amulets"`,
		},
		"key only": {
			line: filter.AttributeLine{Key: "Continue"},
			want: "Continue",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.line.String())
		})
	}
}
