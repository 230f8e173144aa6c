package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "TestGame", want: "testgame"},
		{name: "TestGame/Stored game", want: "testgame-stored_game"},
		{name: "TestGame/a:b", want: "testgame-a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyPrefix(tt.name))
		})
	}
}
