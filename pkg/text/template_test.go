package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/srcpatch/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

func TestParseTemplate(t *testing.T) {
	p := pattern.New("kv").
		Begin("key").Text("key").End().Text("=").Begin("value").Text("value").End().
		MustBuild()
	m := p.Find("key = value")
	require.NotNil(t, m)

	tests := []struct {
		name      string
		template  string
		want      string
		wantRefs  []string
		wantError string
	}{
		{
			name:     "literal_only",
			template: "nothing to see",
			want:     "nothing to see",
		},
		{
			name:     "references",
			template: "${value}: ${key} (${value})",
			want:     "value: key (value)",
			wantRefs: []string{"value", "key"},
		},
		{
			name:     "escaped_reference",
			template: "`$${key}` is ${key}",
			want:     "`${key}` is key",
			wantRefs: []string{"key"},
		},
		{
			name:     "lone_dollar",
			template: "$key $ $$ ${key}",
			want:     "$key $ $$ key",
			wantRefs: []string{"key"},
		},
		{
			name:      "unterminated",
			template:  "${key",
			wantError: "unterminated reference",
		},
		{
			name:      "bad_name",
			template:  "${a-b}",
			wantError: `bad reference "a-b"`,
		},
		{
			name:      "empty_name",
			template:  "${}",
			wantError: `bad reference ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.template)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTemplate))
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.Render(m))
			assert.Equal(t, tt.wantRefs, tmpl.References())
			assert.Equal(t, tt.template, tmpl.String())
		})
	}
}
