package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course" json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// swagger:model LessonProgress
type LessonProgress struct {
	UUIDBase
	UserID              string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_lesson" json:"userId"`
	LessonID            string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_lesson" json:"lessonId"`
	Completed           bool       `gorm:"default:false" json:"completed"`
	LastPositionSeconds int        `gorm:"default:0" json:"lastPositionSeconds"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
