package courseservice

import (
	"context"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

// Catalog is the read side of the course table.
type Catalog interface {
	Get(id string) (coursedomain.Course, error)
	List() []coursedomain.Course
}

// Service exposes the course catalog to handlers and other modules.
type Service interface {
	// ListCourses returns a summary of every course ordered by name.
	ListCourses(ctx context.Context) ([]coursedomain.Summary, error)
	// GetCourse returns a course with its computed totals.
	GetCourse(ctx context.Context, courseID string) (*CourseDetail, error)
}

// CourseDetail is a course plus the par and yardage sums shown on the setup screen.
type CourseDetail struct {
	coursedomain.Course
	Initials      string              `json:"initials"`
	ParTotals     coursedomain.Totals `json:"parTotals"`
	YardageTotals coursedomain.Totals `json:"yardageTotals"`
}
