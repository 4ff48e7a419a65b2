// file: services/flag_matcher_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchFlag(t *testing.T) {
	cases := []struct {
		name          string
		submitted     string
		stored        string
		caseSensitive bool
		want          bool
	}{
		{"exact match", "RabbitCTF{test}", "RabbitCTF{test}", true, true},
		{"wrong flag", "RabbitCTF{nope}", "RabbitCTF{test}", true, false},
		{"case mismatch rejected when sensitive", "rabbitctf{test}", "RabbitCTF{test}", true, false},
		{"case ignored when insensitive", "rabbitctf{test}", "RabbitCTF{Test}", false, true},
		{"surrounding whitespace trimmed", "  RabbitCTF{test}\n", "RabbitCTF{test}", true, true},
		{"whitespace and case together", " rabbitctf{test} ", "RabbitCTF{Test}", false, true},
		{"inner whitespace still significant", "RabbitCTF{ test }", "RabbitCTF{test}", true, false},
		{"empty submission", "", "RabbitCTF{test}", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchFlag(tc.submitted, tc.stored, tc.caseSensitive))
		})
	}
}
