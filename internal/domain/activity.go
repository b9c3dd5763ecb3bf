package domain

// Activity is an extracurricular offering. Name is the directory key.
type Activity struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"` // informational, not enforced
	Participants    []string `yaml:"participants"`     // signup order

	// Version counts roster changes. The store bumps it with every signup and
	// removal, so a higher Version is always a later roster.
	Version uint64 `yaml:"-"`
}

// RosterChange is the outcome of a signup or removal: the roster after the
// change and the email as it was matched against the roster.
type RosterChange struct {
	Activity Activity
	Email    string
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	return a.indexOf(email) >= 0
}

func (a Activity) indexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// SignUp appends email to the roster.
func (a *Activity) SignUp(email string) error {
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Remove deletes email from the roster, keeping the order of the rest.
func (a *Activity) Remove(email string) error {
	i := a.indexOf(email)
	if i < 0 {
		return ErrParticipantNotFound
	}
	a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	return nil
}
