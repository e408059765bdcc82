package courseservice

import (
	"fmt"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
)

// ------------------------
// Fake Catalog
// ------------------------

type FakeCatalog struct {
	trace []string

	GetFunc  func(id string) (coursedomain.Course, error)
	ListFunc func() []coursedomain.Course
}

func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{trace: []string{}}
}

func (f *FakeCatalog) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCatalog) Get(id string) (coursedomain.Course, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(id)
	}
	return coursedomain.Course{}, fmt.Errorf("%w: %s", coursedomain.ErrCourseNotFound, id)
}

func (f *FakeCatalog) List() []coursedomain.Course {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc()
	}
	return nil
}

func (f *FakeCatalog) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ Catalog = (*FakeCatalog)(nil)
