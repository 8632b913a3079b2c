package models

import "time"

// Student represents an enrolled learner. Class and academic-year references
// may be null while the student is unassigned.
type Student struct {
	ID               string     `db:"id" json:"id"`
	FullName         string     `db:"full_name" json:"full_name"`
	Gender           string     `db:"gender" json:"gender"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	ClassID          *string    `db:"class_id" json:"class_id,omitempty"`
	ClassName        *string    `db:"class_name" json:"class_name,omitempty"`
	GuardianName     *string    `db:"guardian_name" json:"guardian_name,omitempty"`
	GuardianPhone    *string    `db:"guardian_phone" json:"guardian_phone,omitempty"`
	EnrollmentStatus string     `db:"enrollment_status" json:"enrollment_status"`
	AcademicYearID   *string    `db:"academic_year_id" json:"academic_year_id,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// Class represents a class group.
type Class struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	AcademicYear string  `db:"academic_year" json:"academic_year"`
	TeacherID    *string `db:"teacher_id" json:"teacher_id,omitempty"`
}

// Term represents an academic term.
type Term struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// AcademicYear represents a school year. At most one year is current at a
// time; that invariant is enforced by the enrollment workflows upstream.
type AcademicYear struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	IsCurrent bool   `db:"is_current" json:"is_current"`
}

// Subject represents a taught subject.
type Subject struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
