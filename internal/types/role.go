package types

import (
	"fmt"
	"strings"
)

// Role is the caller's access tier, carried as a JWT claim. Roles form a
// total order: User < Operator < Analyst < Admin, so Admin satisfies every
// minimum-role check.
type Role string

const (
	RoleUser     Role = "USER"
	RoleOperator Role = "OPERATOR"
	RoleAnalyst  Role = "ANALYST"
	RoleAdmin    Role = "ADMIN"
)

var roleRank = map[Role]int{
	RoleUser:     0,
	RoleOperator: 1,
	RoleAnalyst:  2,
	RoleAdmin:    3,
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Meets reports whether the role satisfies the given minimum.
func (r Role) Meets(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[min]
}

func (r Role) String() string { return string(r) }
