package user

// Role is an ordered privilege level. Guards accept a role and everything
// above it, so a single comparison replaces per-endpoint role lists.
type Role string

const (
	RoleReadOnly Role = "read_only"
	RoleScanner  Role = "scanner"
	RoleMember   Role = "member"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleReadOnly: 0,
	RoleScanner:  1,
	RoleMember:   2,
	RoleAdmin:    3,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether r grants at least the privileges of required.
// Unknown roles never satisfy anything.
func (r Role) Satisfies(required Role) bool {
	actual, ok := roleRank[r]
	if !ok {
		return false
	}
	min, ok := roleRank[required]
	if !ok {
		return false
	}
	return actual >= min
}
