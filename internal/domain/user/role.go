package user

import (
	"strconv"
	"strings"
)

// ===============================
// User Role
// ===============================

type Role int

const (
	RoleUnknown Role = 0
	RoleClient  Role = 1
	RoleBarber  Role = 2
	RoleAdmin   Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleBarber:
		return "barber"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleBarber || r == RoleAdmin
}

// StaffTag is the symbolic role string the create-staff endpoint expects.
func (r Role) StaffTag() string {
	switch r {
	case RoleBarber:
		return "Barber"
	case RoleAdmin:
		return "Admin"
	default:
		return "Client"
	}
}

// NormalizeRole folds the role encodings observed in tokens and API payloads
// (small integers, numeric strings, English and Spanish tags) into one
// canonical Role. Every comparison downstream uses the canonical type only.
func NormalizeRole(raw any) Role {
	switch v := raw.(type) {
	case Role:
		return v
	case int:
		return fromInt(v)
	case int64:
		return fromInt(int(v))
	case float64:
		return fromInt(int(v))
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if n, err := strconv.Atoi(s); err == nil {
			return fromInt(n)
		}
		switch s {
		case "client", "cliente":
			return RoleClient
		case "barber", "barbero":
			return RoleBarber
		case "admin", "administrador":
			return RoleAdmin
		}
	}
	return RoleUnknown
}

func fromInt(n int) Role {
	if n >= 1 && n <= 3 {
		return Role(n)
	}
	return RoleUnknown
}
