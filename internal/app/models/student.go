package models

// Student defines the student specialization ('students' table)
type Student struct {
	UserID             int64  `db:"user_id"`
	RegistrationNumber string `db:"registration_number"` // Unique enrolment number
	Semester           int    `db:"semester"`            // 0 when unknown

	// Relations (populated when needed)
	User *User
}

// StudentInput carries the fields accepted when creating a student
type StudentInput struct {
	FullName           string `validate:"required,notblank,min=2,max=150"`
	Email              string `validate:"required,email,max=150"`
	Password           string
	RegistrationNumber string `validate:"required,notblank,max=20"`
	Semester           int    `validate:"gte=0"`
}

// StudentPatch holds the fields to change on an existing student. Nil fields are left
// untouched.
type StudentPatch struct {
	FullName           *string
	Email              *string
	Password           *string // plain text, hashed before it is stored
	RegistrationNumber *string
	Semester           *int
}

// Empty reports whether the patch changes nothing
func (p StudentPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.Password == nil &&
		p.RegistrationNumber == nil && p.Semester == nil
}

// StudentColumns returns the students-table columns present in the patch
func (p StudentPatch) StudentColumns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.RegistrationNumber != nil {
		cols["registration_number"] = *p.RegistrationNumber
	}
	if p.Semester != nil {
		cols["semester"] = *p.Semester
	}
	return cols
}
