package audit

import "fmt"

// LoginEvent represents a login attempt
type LoginEvent struct {
	Username     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e LoginEvent) MessageID() string {
	return "login"
}

func (e LoginEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully logged in", e.Username)
	}
	return withError(fmt.Sprintf("%s failed to log in", e.Username), e.ErrorMessage)
}

func (e LoginEvent) Severity() Severity {
	return severity(e.Success)
}

func (e LoginEvent) Facility() int {
	return FacilityAuthPriv
}

func (e LoginEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "login",
			"result":    result(e.Success),
		},
	}
}

// LogoutEvent represents a session being closed by its owner
type LogoutEvent struct {
	Username string
	ClientIP string
}

func (e LogoutEvent) MessageID() string {
	return "logout"
}

func (e LogoutEvent) Message() string {
	if e.Username == "" {
		return "anonymous session logged out"
	}
	return fmt.Sprintf("%s logged out", e.Username)
}

func (e LogoutEvent) Severity() Severity {
	return SeverityInfo
}

func (e LogoutEvent) Facility() int {
	return FacilityAuthPriv
}

func (e LogoutEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "logout",
		},
	}
}

// ContentEvent represents a content mutation, applied or submitted for approval
type ContentEvent struct {
	UserID       string
	ClientIP     string
	Operation    string // "create", "edit", "delete"
	Section      string
	Lang         string
	CountryCode  string
	ItemID       string
	Pending      bool
	Success      bool
	ErrorMessage string
}

func (e ContentEvent) MessageID() string {
	return "content"
}

func (e ContentEvent) target() string {
	target := e.Section
	if e.CountryCode != "" {
		target = e.Lang + "/" + e.CountryCode + "/" + target
	} else if e.Lang != "" {
		target = e.Lang + "/" + target
	}
	if e.ItemID != "" {
		target += "/" + e.ItemID
	}
	return target
}

func (e ContentEvent) Message() string {
	if e.Success && e.Pending {
		return fmt.Sprintf("%s submitted %s of %s for approval", e.UserID, e.Operation, e.target())
	}
	if e.Success {
		return fmt.Sprintf("%s applied %s of %s", e.UserID, e.Operation, e.target())
	}
	return withError(fmt.Sprintf("%s tried to %s %s", e.UserID, e.Operation, e.target()), e.ErrorMessage)
}

func (e ContentEvent) Severity() Severity {
	if e.Success && e.Pending {
		return SeverityNotice
	}
	return severity(e.Success)
}

func (e ContentEvent) Facility() int {
	return FacilityUser
}

func (e ContentEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"section": e.Section,
			"lang":    e.Lang,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
	if e.CountryCode != "" {
		sd[SDIDSubject]["country"] = e.CountryCode
	}
	if e.ItemID != "" {
		sd[SDIDSubject]["id"] = e.ItemID
	}
	if e.Pending {
		sd[SDIDAction]["pending"] = "true"
	}
	return sd
}

// ModerationEvent represents an admin decision on a pending change
type ModerationEvent struct {
	UserID       string
	ClientIP     string
	ChangeID     string
	Decision     string // "approve", "reject"
	Section      string
	Submitter    string
	Applied      bool
	Success      bool
	ErrorMessage string
}

func (e ModerationEvent) MessageID() string {
	return "moderation"
}

func (e ModerationEvent) Message() string {
	if !e.Success {
		return withError(fmt.Sprintf("%s failed to %s pending change %s", e.UserID, e.Decision, e.ChangeID), e.ErrorMessage)
	}
	verb := "rejected"
	if e.Decision == "approve" {
		verb = "approved"
	}
	msg := fmt.Sprintf("%s %s pending change %s by %s", e.UserID, verb, e.ChangeID, e.Submitter)
	if e.Applied {
		msg += " (applied)"
	}
	return msg
}

func (e ModerationEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ModerationEvent) Facility() int {
	return FacilityUser
}

func (e ModerationEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"change":    e.ChangeID,
			"section":   e.Section,
			"submitter": e.Submitter,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Decision,
			"result":    result(e.Success),
		},
	}
}

// UserEvent represents user management by an admin or operator
type UserEvent struct {
	UserID       string
	ClientIP     string
	Subject      string
	Operation    string // "create", "update", "delete", "reset-password"
	Success      bool
	ErrorMessage string
}

func (e UserEvent) MessageID() string {
	return "user"
}

func (e UserEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on user %s", e.UserID, e.Operation, e.Subject)
	}
	return withError(fmt.Sprintf("%s failed to %s user %s", e.UserID, e.Operation, e.Subject), e.ErrorMessage)
}

func (e UserEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e UserEvent) Facility() int {
	return FacilityAuthPriv
}

func (e UserEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"role": e.Subject,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
}
