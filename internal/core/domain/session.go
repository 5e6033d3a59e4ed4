package domain

// Session is the client-held authentication state: token, derived role and
// the last fetched profile.
type Session struct {
	Token string       `json:"-"`
	Role  Role         `json:"role"`
	User  *UserProfile `json:"user,omitempty"`
}

// VisitorSession is the empty session used at start-up and after teardown.
func VisitorSession() Session {
	return Session{Role: RoleVisitor}
}

// NewSession builds a session whose role is derived from the profile. A
// missing token or profile always yields a visitor.
func NewSession(token string, user *UserProfile) Session {
	if token == "" || user == nil {
		return VisitorSession()
	}
	u := *user
	return Session{Token: token, Role: RoleFromProfile(&u), User: &u}
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool {
	return s.Role.Authenticated()
}

// Consistent reports whether role != visitor implies both a profile and a token.
func (s Session) Consistent() bool {
	if s.Role == RoleVisitor {
		return true
	}
	return s.User != nil && s.Token != ""
}

// Clone returns a copy that shares no pointers with s.
func (s Session) Clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
