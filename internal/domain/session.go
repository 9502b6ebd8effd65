package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// User is the profile returned by the auth endpoint. The endpoint may send
// the id as a string or a number; both decode into ID.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.Name, u.Email, u.ID = raw.Name, raw.Email, ""
	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.ID, &s); err == nil {
		u.ID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.ID, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = n.String()
	return nil
}

// Session is a signed-in state persisted under auth-session.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether s has a token and has not expired at now.
func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.ExpiresAt)
}
