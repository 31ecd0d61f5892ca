package gifprogram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gifportal/internal/idl"
)

const declaredAccounts = `
  "accounts": [
    {"name": "BaseAccount", "type": {"kind": "struct", "fields": [
      {"name": "totalGifs", "type": "u64"},
      {"name": "gifList", "type": {"vec": {"defined": "ItemStruct"}}}
    ]}}
  ],
  "types": [
    {"name": "ItemStruct", "type": {"kind": "struct", "fields": [
      {"name": "gifLink", "type": "string"},
      {"name": "userAddress", "type": "publicKey"}
    ]}}
  ],`

// withAccounts swaps the bare account list of testIDL for accounts.
func withAccounts(t *testing.T, accounts string) *idl.Document {
	t.Helper()
	src := strings.Replace(testIDL, `"accounts": [{"name": "BaseAccount"}],`, accounts, 1)
	require.NotEqual(t, testIDL, src)
	doc, err := idl.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestCheckLayout_AcceptsMatchingDeclaration(t *testing.T) {
	doc := withAccounts(t, declaredAccounts)
	assert.NoError(t, checkLayout(doc))

	_, err := NewClient(&fakeRPC{}, doc)
	assert.NoError(t, err)
}

func TestCheckLayout_AcceptsUndeclaredFields(t *testing.T) {
	doc, err := idl.Parse([]byte(testIDL))
	require.NoError(t, err)
	assert.NoError(t, checkLayout(doc))
}

func TestCheckLayout_RejectsDifferentLayouts(t *testing.T) {
	tests := map[string]struct{ from, to string }{
		"total width":     {`"type": "u64"`, `"type": "u32"`},
		"list name":       {`"name": "gifList"`, `"name": "gifs"`},
		"item field type": {`"name": "userAddress", "type": "publicKey"`, `"name": "userAddress", "type": "string"`},
		"item field order": {
			`{"name": "gifLink", "type": "string"},
      {"name": "userAddress", "type": "publicKey"}`,
			`{"name": "userAddress", "type": "publicKey"},
      {"name": "gifLink", "type": "string"}`,
		},
		"extra item field": {`{"name": "userAddress", "type": "publicKey"}`, `{"name": "userAddress", "type": "publicKey"}, {"name": "votes", "type": "u64"}`},
		"undeclared item":  {`"defined": "ItemStruct"`, `"defined": "Other"`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			accounts := strings.Replace(declaredAccounts, tt.from, tt.to, 1)
			require.NotEqual(t, declaredAccounts, accounts)
			doc := withAccounts(t, accounts)

			assert.ErrorIs(t, checkLayout(doc), ErrLayoutMismatch)
			_, err := NewClient(&fakeRPC{}, doc)
			assert.ErrorIs(t, err, ErrLayoutMismatch)
		})
	}
}
