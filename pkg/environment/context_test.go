package environment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/corpsite/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want environment.Environment
	}{
		{"production", environment.Production},
		{"PROD", environment.Production},
		{" staging ", environment.Staging},
		{"stage", environment.Staging},
		{"development", environment.Development},
		{"", environment.Development},
		{"qa", environment.Development},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, environment.Parse(tt.in))
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		ctx := environment.WithContext(context.Background(), environment.Production)
		assert.Equal(t, environment.Production, environment.FromContext(ctx))
		assert.True(t, environment.IsProduction(ctx))
		assert.False(t, environment.IsDevelopment(ctx))
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		assert.Equal(t, environment.Environment(""), environment.FromContext(ctx))
		assert.False(t, environment.IsProduction(ctx))
	})

	t.Run("log extractor", func(t *testing.T) {
		t.Parallel()
		extract := environment.LogExtractor()

		_, ok := extract(context.Background())
		assert.False(t, ok)

		attr, ok := extract(environment.WithContext(context.Background(), environment.Staging))
		assert.True(t, ok)
		assert.Equal(t, "env", attr.Key)
		assert.Equal(t, "staging", attr.Value.String())
	})
}
