package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_SignUpAndRemove(t *testing.T) {
	a := Activity{Name: "Chess Club", Participants: []string{"a@x.edu", "b@x.edu"}}

	require.NoError(t, a.SignUp("c@x.edu"))
	assert.Equal(t, []string{"a@x.edu", "b@x.edu", "c@x.edu"}, a.Participants)

	assert.ErrorIs(t, a.SignUp("b@x.edu"), ErrAlreadySignedUp)
	assert.Len(t, a.Participants, 3)

	require.NoError(t, a.Remove("b@x.edu"))
	assert.Equal(t, []string{"a@x.edu", "c@x.edu"}, a.Participants)

	assert.ErrorIs(t, a.Remove("b@x.edu"), ErrParticipantNotFound)
}

func TestActivity_Clone(t *testing.T) {
	a := Activity{Name: "Art Club", Participants: []string{"a@x.edu"}}

	c := a.Clone()
	c.Participants[0] = "changed@x.edu"
	c.Participants = append(c.Participants, "b@x.edu")

	assert.Equal(t, []string{"a@x.edu"}, a.Participants)
}

func TestActivity_CloneNilRoster(t *testing.T) {
	c := Activity{Name: "Empty"}.Clone()

	// an empty roster must still serialise as a list
	assert.NotNil(t, c.Participants)
	assert.Empty(t, c.Participants)
}
