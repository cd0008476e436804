package models

// Professor defines the professor specialization ('professors' table)
type Professor struct {
	UserID  int64  `db:"user_id"`
	StaffID string `db:"staff_id"` // Unique staff number
	Office  string `db:"office"`   // Optional, empty when unknown

	// Relations (populated when needed)
	User *User
}

// ProfessorInput carries the fields accepted when creating a professor
type ProfessorInput struct {
	FullName string `validate:"required,notblank,min=2,max=150"`
	Email    string `validate:"required,email,max=150"`
	Password string
	StaffID  string `validate:"required,notblank,max=20"`
	Office   string `validate:"max=50"`
}

// ProfessorPatch holds the fields to change on an existing professor
type ProfessorPatch struct {
	FullName *string
	Email    *string
	Password *string
	StaffID  *string
	Office   *string
}

// Empty reports whether the patch changes nothing
func (p ProfessorPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.Password == nil &&
		p.StaffID == nil && p.Office == nil
}

// ProfessorColumns returns the professors-table columns present in the patch
func (p ProfessorPatch) ProfessorColumns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.StaffID != nil {
		cols["staff_id"] = *p.StaffID
	}
	if p.Office != nil {
		cols["office"] = *p.Office
	}
	return cols
}
