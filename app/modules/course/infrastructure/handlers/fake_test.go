package coursehandlers

import (
	"context"

	courseservice "github.com/Black-And-White-Club/three-under/app/modules/course/application"
	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

type FakeCourseService struct {
	ListCoursesFunc func(ctx context.Context) ([]coursedomain.Summary, error)
	GetCourseFunc   func(ctx context.Context, courseID string) (*courseservice.CourseDetail, error)
}

func (f *FakeCourseService) ListCourses(ctx context.Context) ([]coursedomain.Summary, error) {
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeCourseService) GetCourse(ctx context.Context, courseID string) (*courseservice.CourseDetail, error) {
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, courseID)
	}
	return nil, coursedomain.ErrCourseNotFound
}

var _ courseservice.Service = (*FakeCourseService)(nil)
