package domain

// Difficulty is the skill level of a lesson or of a project's creator.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyHard         Difficulty = "Hard"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyHard:
		return true
	}
	return false
}

// Tab is one of the top-level dashboard tabs.
type Tab string

const (
	TabLabLayout      Tab = "Lab Layout"
	TabMaterials      Tab = "Materials"
	TabSchedule       Tab = "Schedule"
	TabProjectGallery Tab = "Project Gallery"
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabLabLayout, TabMaterials, TabSchedule, TabProjectGallery}

func (t Tab) String() string { return string(t) }

func (t Tab) IsValid() bool {
	switch t {
	case TabLabLayout, TabMaterials, TabSchedule, TabProjectGallery:
		return true
	}
	return false
}

// FocusMode is a full-view flow that replaces normal tab browsing.
type FocusMode string

const (
	FocusNone    FocusMode = "none"
	FocusLesson  FocusMode = "lesson"
	FocusProject FocusMode = "project"
)

func (f FocusMode) String() string { return string(f) }

// View names the screen a client should render for the current state.
type View string

const (
	ViewLabLayout     View = "lab-layout"
	ViewMaterials     View = "materials"
	ViewSchedule      View = "schedule"
	ViewGallery       View = "project-gallery"
	ViewLessonPath    View = "lesson-path"
	ViewProjectDetail View = "project-detail"
)

// ViewForTab maps a tab to the view that renders it.
func ViewForTab(t Tab) View {
	switch t {
	case TabMaterials:
		return ViewMaterials
	case TabSchedule:
		return ViewSchedule
	case TabProjectGallery:
		return ViewGallery
	default:
		return ViewLabLayout
	}
}

// ActivityKind classifies a schedule item.
type ActivityKind string

const (
	ActivityRecess      ActivityKind = "Recess Time"
	ActivityCCA         ActivityKind = "CCA"
	ActivityWorkshop    ActivityKind = "Workshop"
	ActivityCompetition ActivityKind = "Competition"
	ActivityExhibition  ActivityKind = "Exhibition"
)

func (a ActivityKind) String() string { return string(a) }

func (a ActivityKind) IsValid() bool {
	switch a {
	case ActivityRecess, ActivityCCA, ActivityWorkshop, ActivityCompetition, ActivityExhibition:
		return true
	}
	return false
}

// StockStatus is the availability of a catalog material.
type StockStatus string

const (
	StockIn  StockStatus = "In Stock"
	StockLow StockStatus = "Low Stock"
)

func (s StockStatus) String() string { return string(s) }

func (s StockStatus) IsValid() bool {
	return s == StockIn || s == StockLow
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) String() string { return string(r) }
