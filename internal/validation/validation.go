package validation

import (
	"regexp"
	"strconv"
)

// FieldErrors aggregates validation failures per field. Unlike the
// authorization gate, which stops at the first failure, every violated rule
// is collected before the request is rejected.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field failed validation.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// MsgInvalidID is returned for id path parameters that don't parse as a
// positive integer.
const MsgInvalidID = "Id must be a valid number"

// ParseID parses an id path parameter. Ids must be positive integers.
func ParseID(raw string) (int64, FieldErrors) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		errs := FieldErrors{}
		errs.Add("id", MsgInvalidID)
		return 0, errs
	}
	return id, nil
}

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// reservedUsernames can never be registered. The comparison is an exact,
// case-sensitive match.
var reservedUsernames = []string{"atlauncher", "admin", "root"}

// UserPayload is the request body for creating or updating a user. Pointer
// fields distinguish absent keys from empty values on partial updates.
type UserPayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ValidateUser checks a user payload against the fixed field rules. When
// partial is true (PUT), absent fields are skipped; present fields are always
// checked in full.
func ValidateUser(payload UserPayload, partial bool) FieldErrors {
	errs := FieldErrors{}

	if payload.Username == nil || *payload.Username == "" {
		if !partial {
			errs.Add("username", "Username can't be blank")
		}
	} else {
		username := *payload.Username
		if len(username) < 4 {
			errs.Add("username", "Username must be at least 4 characters")
		}
		if len(username) > 64 {
			errs.Add("username", "Username must be less than 64 characters")
		}
		if !usernamePattern.MatchString(username) {
			errs.Add("username", "Username can only contain letters, numbers, underscores and dashes")
		}
		for _, reserved := range reservedUsernames {
			if username == reserved {
				errs.Add("username", "Username is not allowed")
				break
			}
		}
	}

	if payload.Email == nil || *payload.Email == "" {
		if !partial {
			errs.Add("email", "Email can't be blank")
		}
	} else if !emailPattern.MatchString(*payload.Email) {
		errs.Add("email", "Email is not a valid email")
	}

	if payload.Password == nil || *payload.Password == "" {
		if !partial {
			errs.Add("password", "Password can't be blank")
		}
	} else if len(*payload.Password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	return errs
}

// PackPayload is the request body for creating or updating a pack.
type PackPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Enabled     *bool   `json:"enabled"`
}

// ValidatePack checks a pack payload against the pack schema rules.
func ValidatePack(payload PackPayload, partial bool) FieldErrors {
	errs := FieldErrors{}

	if payload.Name == nil || *payload.Name == "" {
		if !partial {
			errs.Add("name", "Name can't be blank")
		}
	} else if len(*payload.Name) > 255 {
		errs.Add("name", "Name must be less than 255 characters")
	}

	if payload.Type != nil && *payload.Type != "" {
		switch *payload.Type {
		case "public", "semipublic", "private":
		default:
			errs.Add("type", "Type must be one of public, semipublic or private")
		}
	}

	return errs
}

// PackVersionPayload is the request body for creating a pack version.
type PackVersionPayload struct {
	Version            *string `json:"version"`
	MinecraftVersionID *uint   `json:"minecraft_version_id"`
	Changelog          *string `json:"changelog"`
}

// ValidatePackVersion checks a pack version payload.
func ValidatePackVersion(payload PackVersionPayload) FieldErrors {
	errs := FieldErrors{}

	if payload.Version == nil || *payload.Version == "" {
		errs.Add("version", "Version can't be blank")
	} else {
		if len(*payload.Version) < 3 {
			errs.Add("version", "Version must be at least 3 characters")
		}
		if len(*payload.Version) > 64 {
			errs.Add("version", "Version must be less than 64 characters")
		}
	}

	return errs
}

// ServerPayload is the request body for creating or updating a server.
type ServerPayload struct {
	Name              *string `json:"name"`
	Host              *string `json:"host"`
	Port              *int    `json:"port"`
	Description       *string `json:"description"`
	PackID            *uint   `json:"pack_id"`
	PackVersionID     *uint   `json:"pack_version_id"`
	BannerURL         *string `json:"banner_url"`
	WebsiteURL        *string `json:"website_url"`
	DiscordInviteCode *string `json:"discord_invite_code"`
	VotifierHost      *string `json:"votifier_host"`
	VotifierPort      *int    `json:"votifier_port"`
}

// ValidateServer checks a server payload.
func ValidateServer(payload ServerPayload, partial bool) FieldErrors {
	errs := FieldErrors{}

	if payload.Name == nil || *payload.Name == "" {
		if !partial {
			errs.Add("name", "Name can't be blank")
		}
	} else if len(*payload.Name) > 255 {
		errs.Add("name", "Name must be less than 255 characters")
	}

	if payload.Host == nil || *payload.Host == "" {
		if !partial {
			errs.Add("host", "Host can't be blank")
		}
	}

	if payload.Port != nil && (*payload.Port <= 0 || *payload.Port > 65535) {
		errs.Add("port", "Port must be a valid port number")
	}

	if !partial {
		if payload.PackID == nil || *payload.PackID == 0 {
			errs.Add("pack_id", "Pack id must be a valid number")
		}
		if payload.PackVersionID == nil || *payload.PackVersionID == 0 {
			errs.Add("pack_version_id", "Pack version id must be a valid number")
		}
	}

	return errs
}
