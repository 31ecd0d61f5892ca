package gifprogram

import (
	"errors"
	"fmt"

	"gifportal/internal/idl"
)

// ErrLayoutMismatch means the IDL declares a BaseAccount layout that
// DecodeBaseAccount cannot read.
var ErrLayoutMismatch = errors.New("base account layout mismatch")

type fieldSpec struct {
	name string
	prim string
}

var itemLayout = []fieldSpec{
	{name: "gifLink", prim: "string"},
	{name: "userAddress", prim: "publicKey"},
}

// checkLayout compares the IDL's BaseAccount declaration with the fixed
// layout DecodeBaseAccount reads:
//
//	BaseAccount { totalGifs: u64, gifList: Vec<Item { gifLink: string, userAddress: publicKey }> }
//
// A type listed without fields declares no layout and is accepted.
func checkLayout(doc *idl.Document) error {
	acct, ok := doc.Account(BaseAccountName)
	if !ok || acct.Type == nil || len(acct.Type.Fields) == 0 {
		return nil
	}
	fields := acct.Type.Fields
	if len(fields) != 2 {
		return fmt.Errorf("%w: %s has %d fields, want totalGifs and gifList", ErrLayoutMismatch, BaseAccountName, len(fields))
	}
	if p, _ := fields[0].Primitive(); fields[0].Name != "totalGifs" || p != "u64" {
		return fmt.Errorf("%w: %s field 0 is %s, want totalGifs: u64", ErrLayoutMismatch, BaseAccountName, fields[0].Name)
	}
	elem, ok := fields[1].VecOfDefined()
	if fields[1].Name != "gifList" || !ok {
		return fmt.Errorf("%w: %s field 1 is %s, want gifList: vec of a defined type", ErrLayoutMismatch, BaseAccountName, fields[1].Name)
	}

	item, ok := doc.Type(elem)
	if !ok || item.Type == nil {
		return fmt.Errorf("%w: gifList element type %s is not declared", ErrLayoutMismatch, elem)
	}
	if len(item.Type.Fields) != len(itemLayout) {
		return fmt.Errorf("%w: %s has %d fields, want %d", ErrLayoutMismatch, elem, len(item.Type.Fields), len(itemLayout))
	}
	for i, want := range itemLayout {
		got := item.Type.Fields[i]
		if p, _ := got.Primitive(); got.Name != want.name || p != want.prim {
			return fmt.Errorf("%w: %s field %d is %s, want %s: %s", ErrLayoutMismatch, elem, i, got.Name, want.name, want.prim)
		}
	}
	return nil
}
