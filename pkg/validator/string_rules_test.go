package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/corpsite/pkg/validator"
)

func TestNotEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "empty", value: "", want: false},
		{name: "whitespace only passes", value: "   ", want: true},
		{name: "content", value: "Hello", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule := validator.NotEmpty("message", tt.value)
			assert.Equal(t, tt.want, rule.Check())
			assert.Equal(t, "message", rule.Error.Field)
			assert.Equal(t, "validation.required", rule.Error.TranslationKey)
		})
	}
}
