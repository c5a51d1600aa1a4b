package entities

// MembershipStatus is a user's state in a channel at query time
type MembershipStatus string

const (
	StatusMember  MembershipStatus = "member"
	StatusLeft    MembershipStatus = "left"
	StatusBanned  MembershipStatus = "banned"
	StatusUnknown MembershipStatus = "unknown"
)

// Satisfied reports whether the status counts as joined. Unknown is treated as left.
func (s MembershipStatus) Satisfied() bool {
	return s == StatusMember
}

// Exemption is the result of the gate exemption check
type Exemption string

const (
	Exempt        Exemption = "exempt"
	NotExempt     Exemption = "not_exempt"
	ExemptUnknown Exemption = "unknown"
)

// IsExempt reports whether the principal bypasses the gate. Unknown is not exempt.
func (e Exemption) IsExempt() bool {
	return e == Exempt
}

// ChatRole is the bot's or a user's role in a chat
type ChatRole string

const (
	RoleOwner         ChatRole = "owner"
	RoleAdministrator ChatRole = "administrator"
	RoleMember        ChatRole = "member"
	RoleRestricted    ChatRole = "restricted"
	RoleLeft          ChatRole = "left"
	RoleBanned        ChatRole = "banned"
	RoleUnknown       ChatRole = "unknown"
)

// IsElevated reports whether the role is owner or administrator
func (r ChatRole) IsElevated() bool {
	return r == RoleOwner || r == RoleAdministrator
}
