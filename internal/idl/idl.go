// Package idl reads the Anchor interface-description document that ships
// with the client. The document names the deployed program's address, its
// instructions with their account lists, and its account types.
package idl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"gifportal/internal/jsonutil"
)

// Document is the subset of an Anchor IDL this client consumes.
type Document struct {
	Version      string        `json:"version"`
	Name         string        `json:"name"`
	Instructions []Instruction `json:"instructions"`
	Accounts     []TypeDef     `json:"accounts"`
	Types        []TypeDef     `json:"types"`
	Metadata     Metadata      `json:"metadata"`
}

// Instruction describes one remote procedure.
type Instruction struct {
	Name     string        `json:"name"`
	Accounts []AccountItem `json:"accounts"`
	Args     []Field       `json:"args"`
}

// AccountItem is one entry of an instruction's account list.
type AccountItem struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
}

// Field is a named, typed argument or struct field. Type is kept raw since
// Anchor encodes it as either a string ("u64") or an object ({"vec": ...}).
type Field struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// Primitive returns the type name when Type is a plain string such as
// "u64", "string" or "publicKey".
func (f Field) Primitive() (string, bool) {
	var name string
	if err := json.Unmarshal(f.Type, &name); err != nil {
		return "", false
	}
	return name, true
}

// VecOfDefined returns the element type name when Type is a vec of a
// user-defined type. Both {"defined":"X"} and {"defined":{"name":"X"}}
// are accepted.
func (f Field) VecOfDefined() (string, bool) {
	var t struct {
		Vec *struct {
			Defined json.RawMessage `json:"defined"`
		} `json:"vec"`
	}
	if err := json.Unmarshal(f.Type, &t); err != nil || t.Vec == nil || len(t.Vec.Defined) == 0 {
		return "", false
	}
	var name string
	if err := json.Unmarshal(t.Vec.Defined, &name); err == nil {
		return name, true
	}
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(t.Vec.Defined, &named); err == nil && named.Name != "" {
		return named.Name, true
	}
	return "", false
}

// TypeDef is a named account or struct type. Type is nil when the document
// only names the type without declaring its layout.
type TypeDef struct {
	Name string    `json:"name"`
	Type *TypeBody `json:"type,omitempty"`
}

// TypeBody is the layout of a struct type.
type TypeBody struct {
	Kind   string  `json:"kind"`
	Fields []Field `json:"fields"`
}

// Metadata carries the deployed program address.
type Metadata struct {
	Address string `json:"address"`
}

// Load reads and parses the IDL at path.
func Load(path string) (*Document, error) {
	var doc Document
	if err := jsonutil.ReadFile(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Parse parses an IDL document from memory.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := jsonutil.UnmarshalWithContext(data, &doc, "parse idl"); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ProgramID returns the program address from metadata.address.
func (d *Document) ProgramID() (solana.PublicKey, error) {
	if d.Metadata.Address == "" {
		return solana.PublicKey{}, fmt.Errorf("idl %q: metadata.address is empty", d.Name)
	}
	pk, err := solana.PublicKeyFromBase58(d.Metadata.Address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("idl %q: metadata.address: %w", d.Name, err)
	}
	return pk, nil
}

// Instruction looks up an instruction by its IDL (camelCase) name.
func (d *Document) Instruction(name string) (Instruction, bool) {
	for _, ix := range d.Instructions {
		if ix.Name == name {
			return ix, true
		}
	}
	return Instruction{}, false
}

// HasAccount reports whether the IDL declares an account type with this name.
func (d *Document) HasAccount(name string) bool {
	_, ok := d.Account(name)
	return ok
}

// Account looks up an account type by name.
func (d *Document) Account(name string) (TypeDef, bool) {
	for _, a := range d.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return TypeDef{}, false
}

// Type looks up a user-defined type by name. Older IDLs declare struct
// types under accounts as well, so those are searched second.
func (d *Document) Type(name string) (TypeDef, bool) {
	for _, t := range d.Types {
		if t.Name == name {
			return t, true
		}
	}
	return d.Account(name)
}

// Require returns an error naming every instruction and account type that is
// missing from the document.
func (d *Document) Require(instructions, accounts []string) error {
	var missing []string
	for _, name := range instructions {
		if _, ok := d.Instruction(name); !ok {
			missing = append(missing, "instruction "+name)
		}
	}
	for _, name := range accounts {
		if !d.HasAccount(name) {
			missing = append(missing, "account "+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("idl %q is missing %s", d.Name, strings.Join(missing, ", "))
	}
	return nil
}
