package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

var (
	AllRoles = []string{
		RoleAdmin,
		RoleStaff,
		RoleStudent,
	}

	// Boleh kelola template & stage config (admin only).
	TemplateAuthorRoles = []string{
		RoleAdmin,
	}

	// Boleh lihat & kelola AR / reconciliation.
	FinanceRoles = []string{
		RoleAdmin,
		RoleStaff,
	}
)

const (
	ErrOnlyAdminsCanAccess  = "Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyFinanceCanAccess = "Hanya admin atau staff yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature)
}
