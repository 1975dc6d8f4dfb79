package model

// swagger:model Course
type Course struct {
	UUIDBase
	Title         string  `gorm:"size:255;not null" json:"title"`
	Description   string  `gorm:"type:text" json:"description"`
	ThumbnailURL  string  `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	Difficulty    string  `gorm:"size:20" json:"difficulty,omitempty"` // beginner, intermediate, advanced
	DurationHours float64 `gorm:"default:0" json:"durationHours"`
	Price         float64 `gorm:"default:0" json:"price"`
	IsPublished   bool    `gorm:"default:false;index" json:"isPublished"`
	InstructorID  string  `gorm:"index;type:varchar(36)" json:"instructorId"`
	Category      string  `gorm:"size:100;index" json:"category,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseModule
type CourseModule struct {
	UUIDBase
	CourseID   string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title      string `gorm:"size:255;not null" json:"title"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	ModuleID        string `gorm:"index;type:varchar(36);not null" json:"moduleId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	VideoURL        string `gorm:"size:512" json:"videoUrl,omitempty"`
	DurationSeconds int    `gorm:"default:0" json:"durationSeconds"`
	OrderIndex      int    `gorm:"default:0" json:"orderIndex"`
	IsFree          bool   `gorm:"default:false" json:"isFree"`
}

func (Lesson) TableName() string {
	return "lessons"
}
