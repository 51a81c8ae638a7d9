package entities

import "github.com/volatiletech/null/v8"

// VisibleTo returns the record as auth may see it. Contact details and the
// pitch deck are reserved for investors; everyone else gets a copy without them.
func (s *Startup) VisibleTo(auth *AuthContext) *Startup {
	out := *s
	if auth.IsInvestor() {
		return &out
	}
	out.Email = null.String{}
	out.Phone = null.String{}
	out.PitchDeckURL = null.String{}
	return &out
}
