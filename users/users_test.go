package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workgram/miniapp-server/users"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		want      string
	}{
		{name: "both names", firstName: "Ada", lastName: "Lovelace", want: "Ada Lovelace"},
		{name: "first only", firstName: "Ada", lastName: "", want: "Ada"},
		{name: "last only", firstName: "", lastName: "Lovelace", want: "Lovelace"},
		{name: "both absent", firstName: "", lastName: "", want: ""},
		{name: "padded", firstName: "  Ada ", lastName: " L ", want: "Ada L"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &users.User{FirstName: tc.firstName, LastName: tc.lastName}
			require.Equal(t, tc.want, u.DisplayName())
		})
	}
}
