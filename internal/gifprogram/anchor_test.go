package gifprogram

import (
	"crypto/sha256"
	"testing"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"addGif", "add_gif"},
		{"startStuffOff", "start_stuff_off"},
		{"initialize", "initialize"},
		{"upvoteGif2", "upvote_gif2"},
		{"setURLFor", "set_url_for"},
	}
	for _, tt := range tests {
		if got := snakeCase(tt.in); got != tt.want {
			t.Errorf("snakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInstructionDiscriminator(t *testing.T) {
	sum := sha256.Sum256([]byte("global:add_gif"))
	got := InstructionDiscriminator("addGif")
	for i := 0; i < 8; i++ {
		if got[i] != sum[i] {
			t.Fatalf("InstructionDiscriminator(addGif) = %x, want %x", got, sum[:8])
		}
	}
}

func TestAccountDiscriminator(t *testing.T) {
	sum := sha256.Sum256([]byte("account:BaseAccount"))
	got := AccountDiscriminator("BaseAccount")
	for i := 0; i < 8; i++ {
		if got[i] != sum[i] {
			t.Fatalf("AccountDiscriminator(BaseAccount) = %x, want %x", got, sum[:8])
		}
	}
}
