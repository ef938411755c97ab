package models

import "time"

// AttendanceStatus is a per-date attendance mark.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// Attendance is a per-date student attendance record based on the
// 'attendance' table, unique on (student, course, date). Recording twice
// for the same key overwrites the previous mark.
type Attendance struct {
	ID        int64            `json:"id" db:"id"`
	SchoolID  int64            `json:"schoolId" db:"school_id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	CourseID  int64            `json:"courseId" db:"course_id"`
	Date      Date             `json:"date" db:"date"`
	Status    AttendanceStatus `json:"status" db:"status" example:"present"`
	Notes     *string          `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}

// TeacherAttendance is the teacher counterpart, unique on (teacher, date),
// based on the 'teacher_attendance' table.
type TeacherAttendance struct {
	ID        int64            `json:"id" db:"id"`
	SchoolID  int64            `json:"schoolId" db:"school_id"`
	TeacherID int64            `json:"teacherId" db:"teacher_id"`
	Date      Date             `json:"date" db:"date"`
	Status    AttendanceStatus `json:"status" db:"status"`
	Notes     *string          `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}
