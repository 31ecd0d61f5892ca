package gifprogram

import (
	"crypto/sha256"
	"strings"
	"unicode"
)

// Anchor prefixes instruction data with sha256("global:<snake_name>")[:8]
// and account data with sha256("account:<TypeName>")[:8].
const (
	globalNamespace  = "global"
	accountNamespace = "account"
)

// Discriminator is the 8-byte tag Anchor prepends to instruction and account data.
type Discriminator [8]byte

func sighash(namespace, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], sum[:8])
	return d
}

// InstructionDiscriminator returns the discriminator for an IDL instruction
// name such as "addGif".
func InstructionDiscriminator(idlName string) Discriminator {
	return sighash(globalNamespace, snakeCase(idlName))
}

// AccountDiscriminator returns the discriminator for an account type name
// such as "BaseAccount".
func AccountDiscriminator(typeName string) Discriminator {
	return sighash(accountNamespace, typeName)
}

// snakeCase converts an IDL camelCase identifier to the Rust snake_case
// name the program was compiled with: "startStuffOff" -> "start_stuff_off".
func snakeCase(s string) string {
	var sb strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
