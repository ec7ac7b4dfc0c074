// Package seed provides the static catalog every workspace starts from.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the immutable seed data. Callers must clone before mutating.
type Catalog struct {
	Lessons   []domain.Lesson
	Projects  []domain.Project
	Materials []domain.Material
	Schedule  []domain.DaySchedule
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		Lessons:   make([]domain.Lesson, 0, len(f.Lessons)),
		Projects:  make([]domain.Project, 0, len(f.Projects)),
		Materials: make([]domain.Material, 0, len(f.Materials)),
		Schedule:  make([]domain.DaySchedule, 0, len(f.Schedule)),
	}

	lessonIDs := make(map[string]struct{}, len(f.Lessons))
	for i, l := range f.Lessons {
		lesson := l.toDomain()
		if lesson.ID == "" {
			return nil, fmt.Errorf("lesson %d: id is required", i)
		}
		if _, dup := lessonIDs[lesson.ID]; dup {
			return nil, fmt.Errorf("lesson %s: duplicate id", lesson.ID)
		}
		if !lesson.Difficulty.IsValid() {
			return nil, fmt.Errorf("lesson %s: invalid difficulty %q", lesson.ID, lesson.Difficulty)
		}
		lessonIDs[lesson.ID] = struct{}{}
		c.Lessons = append(c.Lessons, lesson)
	}

	projectIDs := make(map[string]struct{}, len(f.Projects))
	for i, p := range f.Projects {
		if p.ID == "" {
			return nil, fmt.Errorf("project %d: id is required", i)
		}
		if _, dup := projectIDs[p.ID]; dup {
			return nil, fmt.Errorf("project %s: duplicate id", p.ID)
		}
		projectIDs[p.ID] = struct{}{}
		c.Projects = append(c.Projects, p.toDomain())
	}

	materialIDs := make(map[string]struct{}, len(f.Materials))
	for i, m := range f.Materials {
		if m.ID == "" {
			return nil, fmt.Errorf("material %d: id is required", i)
		}
		if _, dup := materialIDs[m.ID]; dup {
			return nil, fmt.Errorf("material %s: duplicate id", m.ID)
		}
		status := domain.StockStatus(m.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("material %s: invalid status %q", m.ID, m.Status)
		}
		materialIDs[m.ID] = struct{}{}
		c.Materials = append(c.Materials, m.toDomain())
	}

	for _, d := range f.Schedule {
		day := domain.DaySchedule{Day: d.Day, Date: d.Date, Items: make([]domain.ScheduleItem, 0, len(d.Items))}
		for _, it := range d.Items {
			kind := domain.ActivityKind(it.Kind)
			if !kind.IsValid() {
				return nil, fmt.Errorf("schedule %s: invalid activity kind %q", d.Day, it.Kind)
			}
			if it.LessonID != "" {
				if _, ok := lessonIDs[it.LessonID]; !ok {
					return nil, fmt.Errorf("schedule %s: unknown lesson %q", d.Day, it.LessonID)
				}
			}
			day.Items = append(day.Items, domain.ScheduleItem{
				Kind:        kind,
				Title:       it.Title,
				Time:        it.Time,
				Audience:    it.Audience,
				Description: it.Description,
				Instructor:  it.Instructor,
				LessonID:    it.LessonID,
				ImageURL:    it.ImageURL,
			})
		}
		c.Schedule = append(c.Schedule, day)
	}

	return c, nil
}

// Clone returns a deep copy for a new workspace.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Lessons:   make([]domain.Lesson, len(c.Lessons)),
		Projects:  make([]domain.Project, len(c.Projects)),
		Materials: make([]domain.Material, len(c.Materials)),
		Schedule:  make([]domain.DaySchedule, len(c.Schedule)),
	}
	for i, l := range c.Lessons {
		out.Lessons[i] = l.Clone()
	}
	for i, p := range c.Projects {
		out.Projects[i] = p.Clone()
	}
	for i, m := range c.Materials {
		m.CommonUses = append([]string(nil), m.CommonUses...)
		out.Materials[i] = m
	}
	for i, d := range c.Schedule {
		out.Schedule[i] = d.Clone()
	}
	return out
}

// --- YAML file structs ---

type catalogFile struct {
	Lessons   []lessonFile   `yaml:"lessons"`
	Projects  []projectFile  `yaml:"projects"`
	Materials []materialFile `yaml:"materials"`
	Schedule  []dayFile      `yaml:"schedule"`
}

type lessonFile struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	Category      string        `yaml:"category"`
	Difficulty    string        `yaml:"difficulty"`
	Duration      string        `yaml:"duration"`
	Description   string        `yaml:"description"`
	Goal          string        `yaml:"goal"`
	ImageURL      string        `yaml:"image_url"`
	Author        string        `yaml:"author"`
	PublishedDate string        `yaml:"published_date"`
	Tags          []string      `yaml:"tags"`
	Steps         []domain.Step `yaml:"steps"`
}

func (l lessonFile) toDomain() domain.Lesson {
	return domain.Lesson{
		ID:            l.ID,
		Title:         l.Title,
		Category:      l.Category,
		Difficulty:    domain.Difficulty(l.Difficulty),
		Duration:      l.Duration,
		Description:   l.Description,
		Goal:          l.Goal,
		ImageURL:      l.ImageURL,
		Author:        l.Author,
		PublishedDate: l.PublishedDate,
		Tags:          l.Tags,
		Steps:         l.Steps,
	}
}

type projectMaterialFile struct {
	Name     string `yaml:"name"`
	Quantity string `yaml:"quantity"`
	Icon     string `yaml:"icon"`
}

type projectFile struct {
	ID              string                `yaml:"id"`
	Title           string                `yaml:"title"`
	CreatorName     string                `yaml:"creator_name"`
	CreatorLevel    string                `yaml:"creator_level"`
	Category        string                `yaml:"category"`
	Description     string                `yaml:"description"`
	FullDescription string                `yaml:"full_description"`
	Materials       []projectMaterialFile `yaml:"materials"`
	Steps           []domain.Step         `yaml:"steps"`
	Likes           int                   `yaml:"likes"`
	ImageURL        string                `yaml:"image_url"`
	Award           string                `yaml:"award"`
}

func (p projectFile) toDomain() domain.Project {
	var materials []domain.ProjectMaterial
	for _, m := range p.Materials {
		materials = append(materials, domain.ProjectMaterial{Name: m.Name, Quantity: m.Quantity, Icon: m.Icon})
	}
	return domain.Project{
		ID:              p.ID,
		Title:           p.Title,
		CreatorName:     p.CreatorName,
		CreatorLevel:    p.CreatorLevel,
		Category:        p.Category,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		Materials:       materials,
		Steps:           p.Steps,
		Likes:           p.Likes,
		ImageURL:        p.ImageURL,
		Award:           p.Award,
	}
}

type materialFile struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Quantity    string   `yaml:"quantity"`
	Status      string   `yaml:"status"`
	PriceRange  string   `yaml:"price_range"`
	ImageURL    string   `yaml:"image_url"`
	ExternalURL string   `yaml:"external_url"`
	Description string   `yaml:"description"`
	CommonUses  []string `yaml:"common_uses"`
}

func (m materialFile) toDomain() domain.Material {
	return domain.Material{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Quantity:    m.Quantity,
		Status:      domain.StockStatus(m.Status),
		PriceRange:  m.PriceRange,
		ImageURL:    m.ImageURL,
		ExternalURL: m.ExternalURL,
		Description: m.Description,
		CommonUses:  m.CommonUses,
	}
}

type scheduleItemFile struct {
	Kind        string `yaml:"kind"`
	Title       string `yaml:"title"`
	Time        string `yaml:"time"`
	Audience    string `yaml:"audience"`
	Description string `yaml:"description"`
	Instructor  string `yaml:"instructor"`
	LessonID    string `yaml:"lesson_id"`
	ImageURL    string `yaml:"image_url"`
}

type dayFile struct {
	Day   string             `yaml:"day"`
	Date  string             `yaml:"date"`
	Items []scheduleItemFile `yaml:"items"`
}
