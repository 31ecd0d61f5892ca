package idl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIDL = `{
  "version": "0.1.0",
  "name": "myepicproject",
  "instructions": [
    {
      "name": "startStuffOff",
      "accounts": [
        {"name": "baseAccount", "isMut": true, "isSigner": true},
        {"name": "user", "isMut": true, "isSigner": true},
        {"name": "systemProgram", "isMut": false, "isSigner": false}
      ],
      "args": []
    },
    {
      "name": "addGif",
      "accounts": [
        {"name": "baseAccount", "isMut": true, "isSigner": false},
        {"name": "user", "isMut": true, "isSigner": true}
      ],
      "args": [{"name": "gifLink", "type": "string"}]
    }
  ],
  "accounts": [
    {"name": "BaseAccount", "type": {"kind": "struct", "fields": []}}
  ],
  "metadata": {"address": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"}
}`

func TestParse_Sample(t *testing.T) {
	doc, err := Parse([]byte(sampleIDL))
	require.NoError(t, err)

	assert.Equal(t, "myepicproject", doc.Name)
	pid, err := doc.ProgramID()
	require.NoError(t, err)
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", pid.String())

	ix, ok := doc.Instruction("addGif")
	require.True(t, ok)
	require.Len(t, ix.Accounts, 2)
	assert.True(t, ix.Accounts[1].IsSigner)
	assert.Equal(t, "gifLink", ix.Args[0].Name)
	assert.JSONEq(t, `"string"`, string(ix.Args[0].Type))

	assert.True(t, doc.HasAccount("BaseAccount"))
	assert.NoError(t, doc.Require([]string{"startStuffOff", "addGif"}, []string{"BaseAccount"}))
}

func TestRequire_ListsMissing(t *testing.T) {
	doc, err := Parse([]byte(sampleIDL))
	require.NoError(t, err)

	err = doc.Require([]string{"addGif", "removeGif"}, []string{"VoteAccount"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instruction removeGif")
	assert.Contains(t, err.Error(), "account VoteAccount")
}

func TestProgramID_Errors(t *testing.T) {
	doc := &Document{Name: "x"}
	_, err := doc.ProgramID()
	assert.Error(t, err)

	doc.Metadata.Address = "not-base58!"
	_, err = doc.ProgramID()
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idl.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleIDL), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Instructions, 2)
}

func TestFieldTypes(t *testing.T) {
	tests := []struct {
		raw     string
		prim    string
		elem    string
		isPrim  bool
		isVecOf bool
	}{
		{raw: `"u64"`, prim: "u64", isPrim: true},
		{raw: `"publicKey"`, prim: "publicKey", isPrim: true},
		{raw: `{"vec":{"defined":"ItemStruct"}}`, elem: "ItemStruct", isVecOf: true},
		{raw: `{"vec":{"defined":{"name":"ItemStruct"}}}`, elem: "ItemStruct", isVecOf: true},
		{raw: `{"vec":"u8"}`},
		{raw: `{"option":"u64"}`},
	}
	for _, tt := range tests {
		f := Field{Name: "f", Type: []byte(tt.raw)}
		prim, ok := f.Primitive()
		assert.Equal(t, tt.isPrim, ok, tt.raw)
		assert.Equal(t, tt.prim, prim, tt.raw)
		elem, ok := f.VecOfDefined()
		assert.Equal(t, tt.isVecOf, ok, tt.raw)
		assert.Equal(t, tt.elem, elem, tt.raw)
	}
}

func TestType_SearchesTypesThenAccounts(t *testing.T) {
	doc, err := Parse([]byte(`{
	  "name": "x",
	  "accounts": [{"name": "BaseAccount", "type": {"kind": "struct", "fields": [{"name": "totalGifs", "type": "u64"}]}}],
	  "types": [{"name": "ItemStruct", "type": {"kind": "struct", "fields": [{"name": "gifLink", "type": "string"}]}}]
	}`))
	require.NoError(t, err)

	item, ok := doc.Type("ItemStruct")
	require.True(t, ok)
	require.NotNil(t, item.Type)
	assert.Equal(t, "gifLink", item.Type.Fields[0].Name)

	base, ok := doc.Type("BaseAccount")
	require.True(t, ok)
	assert.Equal(t, "struct", base.Type.Kind)

	_, ok = doc.Type("Missing")
	assert.False(t, ok)
}
