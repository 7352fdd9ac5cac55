package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultEnv is the environment variable holding the service-account document.
const DefaultEnv = "SERVICE_ACCOUNT_JSON"

var (
	ErrCredentialMissing   = errors.New("credential missing")
	ErrCredentialMalformed = errors.New("credential malformed")
)

// MissingError reports an unset credential variable. Its message is shown to users verbatim.
type MissingError struct {
	Env string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s environment variable not set", e.Env)
}

func (e *MissingError) Unwrap() error { return ErrCredentialMissing }

// Credential is a parsed service-account document.
type Credential struct {
	raw  []byte
	data map[string]interface{}
}

// JSON returns the document as JSON for the Google client libraries.
func (c *Credential) JSON() []byte { return c.raw }

// ClientEmail is the service-account identity.
func (c *Credential) ClientEmail() string { return c.str("client_email") }

// ProjectID is the owning project.
func (c *Credential) ProjectID() string { return c.str("project_id") }

// Get returns a top-level field of the document.
func (c *Credential) Get(key string) (interface{}, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *Credential) str(key string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return ""
}

// Loader reads the credential from the environment on every call.
type Loader struct {
	env    string
	lookup func(string) (string, bool)
}

// Option configures Loader.
type Option func(*Loader)

// WithLookup replaces os.LookupEnv.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(l *Loader) { l.lookup = fn }
}

func NewLoader(env string, opts ...Option) *Loader {
	if env == "" {
		env = DefaultEnv
	}
	l := &Loader{env: env, lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Env returns the variable name read by the loader.
func (l *Loader) Env() string { return l.env }

// Load reads, unescapes and parses the credential document.
func (l *Loader) Load() (*Credential, error) {
	v, ok := l.lookup(l.env)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, &MissingError{Env: l.env}
	}
	return Parse(v)
}

// Parse decodes backslash escapes in s and parses the result as a JSON object.
// A document that only parses without unescaping (plain JSON with \n inside
// strings) is accepted as is.
func Parse(s string) (*Credential, error) {
	raw := []byte(Unescape(s))
	data, err := decodeObject(raw)
	if err != nil {
		plain, perr := decodeObject([]byte(s))
		if perr != nil {
			return nil, fmt.Errorf("%w: %v", ErrCredentialMalformed, err)
		}
		raw, data = []byte(s), plain
	}
	return &Credential{raw: raw, data: data}, nil
}

func decodeObject(b []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.New("document is not an object")
	}
	return data, nil
}

// Unescape decodes \\ \n \r \t \b \f \" \' \xHH \uXXXX and \UXXXXXXXX sequences.
// Unknown or truncated sequences are kept verbatim.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch next {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[next]
			if r, ok := hexRune(s, i+2, width); ok {
				b.WriteRune(r)
				i += 1 + width
				continue
			}
			b.WriteByte(c)
			continue
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}

func hexRune(s string, start, width int) (rune, bool) {
	if start+width > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}
