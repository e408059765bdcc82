package coursecatalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	coursedomain "github.com/Black-And-White-Club/three-under/app/modules/course/domain"
	"gopkg.in/yaml.v3"
)

//go:embed courses.yaml
var embeddedCourses []byte

type document struct {
	Courses []coursedomain.Course `yaml:"courses"`
}

// Catalog is the read-only course table.
type Catalog struct {
	courses map[string]coursedomain.Course
	order   []string
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCourses)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal course catalog: %w", err)
	}
	return New(doc.Courses)
}

// New builds a catalog from already decoded courses.
func New(courses []coursedomain.Course) (*Catalog, error) {
	c := &Catalog{courses: make(map[string]coursedomain.Course, len(courses))}
	for _, course := range courses {
		if err := course.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.courses[course.ID]; dup {
			return nil, fmt.Errorf("duplicate course id %q", course.ID)
		}
		c.courses[course.ID] = course
		c.order = append(c.order, course.ID)
	}
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.courses[c.order[i]].Name < c.courses[c.order[j]].Name
	})
	return c, nil
}

// Get returns the course with the given id.
func (c *Catalog) Get(id string) (coursedomain.Course, error) {
	course, ok := c.courses[id]
	if !ok {
		return coursedomain.Course{}, fmt.Errorf("%w: %s", coursedomain.ErrCourseNotFound, id)
	}
	return course, nil
}

// List returns every course ordered by name.
func (c *Catalog) List() []coursedomain.Course {
	out := make([]coursedomain.Course, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.courses[id])
	}
	return out
}

// Len reports the number of courses.
func (c *Catalog) Len() int { return len(c.order) }
