package scan

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustParseOne(t *testing.T, content string) Node {
	t.Helper()
	docs, err := ParseDocuments([]byte(content))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return docs[0]
}

func TestFindUnencryptedKey(t *testing.T) {
	password := regexp.MustCompile(`^password$`)

	tests := []struct {
		name     string
		content  string
		pattern  *regexp.Regexp
		wantOK   bool
		wantPath string
	}{
		{
			name:     "top level plaintext",
			content:  "user: admin\npassword: hunter2\n",
			pattern:  password,
			wantOK:   true,
			wantPath: "password",
		},
		{
			name:     "nested mapping",
			content:  "db:\n  host: localhost\n  password: hunter2\n",
			pattern:  password,
			wantOK:   true,
			wantPath: "db.password",
		},
		{
			name:     "mapping inside sequence",
			content:  "users:\n  - name: a\n  - name: b\n    password: hunter2\n",
			pattern:  password,
			wantOK:   true,
			wantPath: "users[1].password",
		},
		{
			name:     "sequence inside sequence",
			content:  "matrix:\n  - - password: x\n",
			pattern:  password,
			wantOK:   true,
			wantPath: "matrix[0][0].password",
		},
		{
			name:    "sequence of scalars is invisible",
			content: "password:\n  - hunter2\n  - hunter3\n",
			pattern: password,
			wantOK:  false,
		},
		{
			name:     "encrypted looking value still reported",
			content:  "password: ENC[AES256_GCM,data:abc,type:str]\n",
			pattern:  password,
			wantOK:   true,
			wantPath: "password",
		},
		{
			name:     "null value is a scalar",
			content:  "password:\n",
			pattern:  password,
			wantOK:   true,
			wantPath: "password",
		},
		{
			name:     "boolean value is a scalar",
			content:  "password: true\n",
			pattern:  password,
			wantOK:   true,
			wantPath: "password",
		},
		{
			name:    "match is case sensitive",
			content: "PASSWORD: hunter2\n",
			pattern: password,
			wantOK:  false,
		},
		{
			name:    "key holding a mapping is not a scalar",
			content: "password:\n  value: x\n",
			pattern: password,
			wantOK:  false,
		},
		{
			name:    "sequence root never matches",
			content: "- password: hunter2\n",
			pattern: password,
			wantOK:  false,
		},
		{
			name:    "scalar root never matches",
			content: "just text\n",
			pattern: password,
			wantOK:  false,
		},
		{
			name:     "partial pattern searches anywhere in key",
			content:  "api_token: abc\n",
			pattern:  regexp.MustCompile(`token`),
			wantOK:   true,
			wantPath: "api_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParseOne(t, tt.content)
			f, ok := FindUnencryptedKey(root, tt.pattern)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantPath, f.Path)
			}
		})
	}
}

func TestFindUnencryptedKeyFirstMatchWins(t *testing.T) {
	root := mustParseOne(t, `
outer:
  inner:
    password: first
password: second
`)
	f, ok := FindUnencryptedKey(root, regexp.MustCompile(`^password$`))
	require.True(t, ok)
	assert.Equal(t, "outer.inner.password", f.Path)
	assert.Equal(t, "first", f.Value)
}

func TestFindUnencryptedKeyFollowsDocumentOrder(t *testing.T) {
	root := mustParseOne(t, "zeta: 1\nalpha: 2\n")
	f, ok := FindUnencryptedKey(root, regexp.MustCompile(`a`))
	require.True(t, ok)
	assert.Equal(t, "zeta", f.Key)
}

// Key patterns are searched, not anchored, as sops evaluates encrypted_regex.
func TestFindUnencryptedKeySearchesKeyNames(t *testing.T) {
	root := mustParseOne(t, "db_password_hint: ask ops\n")

	f, ok := FindUnencryptedKey(root, regexp.MustCompile(`password`))
	require.True(t, ok)
	assert.Equal(t, "db_password_hint", f.Key)

	_, ok = FindUnencryptedKey(root, regexp.MustCompile(`^password$`))
	assert.False(t, ok)
}

// The reported key is always the first sensitive key in depth-first
// document order, no matter how many follow it.
func TestFindUnencryptedKeyDeterministicProperty(t *testing.T) {
	pattern := regexp.MustCompile(`^secret`)

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "pairs")
		pairs := make([]Pair, 0, n)
		first := ""
		for i := 0; i < n; i++ {
			sensitive := rapid.Bool().Draw(t, "sensitive")
			key := "plain" + string(rune('a'+i))
			if sensitive {
				key = "secret" + string(rune('a'+i))
				if first == "" {
					first = key
				}
			}
			pairs = append(pairs, Pair{Key: key, Value: Scalar("v")})
		}

		root := Mapping(pairs...)
		f1, ok1 := FindUnencryptedKey(root, pattern)
		f2, ok2 := FindUnencryptedKey(root, pattern)

		if ok1 != (first != "") {
			t.Fatalf("found=%v, want %v", ok1, first != "")
		}
		if ok1 && f1.Key != first {
			t.Fatalf("reported %q, want first sensitive key %q", f1.Key, first)
		}
		if ok1 != ok2 || f1 != f2 {
			t.Fatalf("repeated scans disagree: %+v vs %+v", f1, f2)
		}
	})
}
