package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermit(t *testing.T) {
	tests := []struct {
		name        string
		requesterID string
		ownerID     string
		expected    bool
	}{
		{name: "owner", requesterID: "u1", ownerID: "u1", expected: true},
		{name: "other user", requesterID: "u2", ownerID: "u1", expected: false},
		{name: "anonymous", requesterID: "", ownerID: "u1", expected: false},
		{name: "anonymous resource never matches", requesterID: "", ownerID: "", expected: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Permit(test.requesterID, test.ownerID))
		})
	}
}
