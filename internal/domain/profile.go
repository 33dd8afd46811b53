package domain

import (
	"encoding/json"
	"strings"
)

// Profile holds the cached user and branch attributes shown in the page
// chrome. Every field is optional and defaults to "".
type Profile struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BranchName     string `json:"branch_name"`
	BranchLogo     string `json:"branch_logo"`
	Gender         string `json:"gender"`
	ProfilePicture string `json:"profile_picture"`
}

// ParseProfile never fails: malformed or empty input yields the zero Profile.
func ParseProfile(data []byte) Profile {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return Profile{}
	}

	field := func(key string) string {
		if v, ok := raw[key].(string); ok {
			return v
		}
		return ""
	}

	return Profile{
		FirstName:      field("first_name"),
		LastName:       field("last_name"),
		BranchName:     field("branch_name"),
		BranchLogo:     field("branch_logo"),
		Gender:         field("gender"),
		ProfilePicture: field("profile_picture"),
	}
}

func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Avatar returns the profile picture, or a placeholder picked by gender.
func (p Profile) Avatar() string {
	if p.ProfilePicture != "" {
		return p.ProfilePicture
	}
	if strings.EqualFold(p.Gender, "female") {
		return "/static/avatar-female.svg"
	}
	return "/static/avatar-male.svg"
}
