//nolint:testpackage // Need access to internal helpers
package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObservables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    []ctr.Observable
		wantErr error
	}{
		{
			name: "single",
			args: []string{"ip:1.2.3.4"},
			want: []ctr.Observable{{Type: "ip", Value: "1.2.3.4"}},
		},
		{
			name: "value with colons",
			args: []string{"ipv6:2001:db8::1", "domain:cisco.com"},
			want: []ctr.Observable{
				{Type: "ipv6", Value: "2001:db8::1"},
				{Type: "domain", Value: "cisco.com"},
			},
		},
		{name: "missing separator", args: []string{"1.2.3.4"}, wantErr: ErrInvalidObservable},
		{name: "missing type", args: []string{":1.2.3.4"}, wantErr: ErrInvalidObservable},
		{name: "missing value", args: []string{"ip:"}, wantErr: ErrInvalidObservable},
		{name: "none", args: nil, wantErr: constants.ErrNoObservables},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseObservables(tt.args)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadText(t *testing.T) {
	t.Parallel()

	text, err := readText(strings.NewReader("ignored"), []string{"seen", "1.2.3.4"})
	require.NoError(t, err)
	assert.Equal(t, "seen 1.2.3.4", text)

	text, err = readText(strings.NewReader("  from stdin 1.2.3.4\n"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "from stdin 1.2.3.4", text)

	_, err = readText(strings.NewReader("   "), []string{"-"})
	require.ErrorIs(t, err, ErrNoInput)
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "indicator.yml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("title: beacon\ntags:\n  - c2\nconfidence: High\n"), 0o600))

	emptyFile := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(emptyFile, nil, 0o600))

	tests := []struct {
		name    string
		arg     string
		want    any
		wantErr bool
	}{
		{name: "plain string", arg: "judgement-123", want: "judgement-123"},
		{name: "numeric string stays a string", arg: "42", want: "42"},
		{
			name: "inline JSON object",
			arg:  `{"type":"ip","value":"1.2.3.4"}`,
			want: map[string]interface{}{"type": "ip", "value": "1.2.3.4"},
		},
		{
			name: "inline JSON array",
			arg:  `[{"type":"ip","value":"1.2.3.4"}]`,
			want: []interface{}{map[string]interface{}{"type": "ip", "value": "1.2.3.4"}},
		},
		{
			name: "YAML file",
			arg:  "@" + yamlFile,
			want: map[string]interface{}{"title": "beacon", "tags": []interface{}{"c2"}, "confidence": "High"},
		},
		{name: "empty file", arg: "@" + emptyFile, wantErr: true},
		{name: "missing file", arg: "@" + filepath.Join(dir, "missing.yml"), wantErr: true},
		{name: "malformed document", arg: `{"type": [`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parsePayload(tt.arg)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeYAML(t *testing.T) {
	t.Parallel()

	got := normalizeYAML(map[interface{}]interface{}{
		1:      "one",
		"list": []interface{}{map[interface{}]interface{}{"nested": true}},
	})

	assert.Equal(t, map[string]interface{}{
		"1":    "one",
		"list": []interface{}{map[string]interface{}{"nested": true}},
	}, got)
}

func TestSectionCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3", sectionCount(map[string]interface{}{"count": 3, "docs": []interface{}{}}))
	assert.Equal(t, `{"status":"ok"}`, sectionCount(map[string]interface{}{"status": "ok"}))
	assert.Equal(t, `"ok"`, sectionCount("ok"))
}
