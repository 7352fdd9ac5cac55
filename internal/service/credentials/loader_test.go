package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) Option {
	return WithLookup(func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	})
}

func TestLoadMissing(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"unset": {},
		"empty": {DefaultEnv: ""},
		"blank": {DefaultEnv: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader("", envOf(env)).Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCredentialMissing))
			assert.Equal(t, "SERVICE_ACCOUNT_JSON environment variable not set", err.Error())
		})
	}
}

func TestLoadEscapedDocument(t *testing.T) {
	// the private key keeps a literal \n after one level of unescaping
	env := `{\"type\": \"service_account\", \"project_id\": \"greeks\", \"client_email\": \"bot@greeks.iam.gserviceaccount.com\", \"private_key\": \"-----BEGIN-----\\nabc\\n-----END-----\\n\"}`
	cred, err := NewLoader("", envOf(map[string]string{DefaultEnv: env})).Load()
	require.NoError(t, err)
	assert.Equal(t, "greeks", cred.ProjectID())
	assert.Equal(t, "bot@greeks.iam.gserviceaccount.com", cred.ClientEmail())
	key, ok := cred.Get("private_key")
	require.True(t, ok)
	assert.Equal(t, "-----BEGIN-----\nabc\n-----END-----\n", key)
}

func TestLoadPlainJSON(t *testing.T) {
	env := `{"type":"service_account","private_key":"line1\nline2"}`
	cred, err := NewLoader("CREDS", envOf(map[string]string{"CREDS": env})).Load()
	require.NoError(t, err)
	key, _ := cred.Get("private_key")
	assert.Equal(t, "line1\nline2", key)
	assert.JSONEq(t, env, string(cred.JSON()))
}

func TestLoadMalformed(t *testing.T) {
	for _, env := range []string{"not json", `["a","b"]`, `null`, `{"a":`} {
		_, err := NewLoader("", envOf(map[string]string{DefaultEnv: env})).Load()
		require.Error(t, err, env)
		assert.True(t, errors.Is(err, ErrCredentialMalformed), env)
		assert.False(t, errors.Is(err, ErrCredentialMissing), env)
	}
}

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		`plain`:          "plain",
		`a\nb`:           "a\nb",
		`tab\there`:      "tab\there",
		`q\"q`:           `q"q`,
		`back\\slash`:    `back\slash`,
		`caf\u00e9`:      "café",
		`\x41\U0001F600`: "A\U0001F600",
		`keep\q`:         `keep\q`,
		`short\u12`:      `short\u12`,
		`trailing\`:      `trailing\`,
	}
	for in, want := range cases {
		assert.Equal(t, want, Unescape(in), in)
	}
}
