package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when a record does not exist or
// belongs to another user.
var ErrNotFound = errors.New("not found")

// SourceTag identifies which input contributed a record. Tags are stored on
// merged records so disconnecting a source can remove exactly its
// contributions.
type SourceTag string

const (
	SourceResume   SourceTag = "resume"
	SourceGitHub   SourceTag = "github"
	SourceLinkedIn SourceTag = "linkedin"
)

// Skill display categories. Heuristic grouping only, never authoritative.
const (
	CategoryProgrammingLanguages = "Programming Languages"
	CategoryTechnologies         = "Technologies"
	CategoryLanguages            = "Languages" // spoken languages
)

type ExperienceItem struct {
	Company     string      `json:"company"`
	Position    string      `json:"position"`
	Duration    string      `json:"duration"` // free-text range
	Description string      `json:"description,omitempty"`
	Origins     []SourceTag `json:"origins,omitempty"`
}

type EducationItem struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationYear string `json:"graduationYear"` // 4-digit year
	StartYear      string `json:"startYear,omitempty"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

type Achievement struct {
	Title        string `json:"title"`
	Type         string `json:"type"` // achievement | competition | hackathon
	Date         string `json:"date"`
	Description  string `json:"description"`
	Position     string `json:"position,omitempty"`
	Organization string `json:"organization,omitempty"`
	URL          string `json:"url,omitempty"`
}

type Project struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Technologies []string    `json:"technologies"`
	Duration     string      `json:"duration,omitempty"`
	URL          string      `json:"url,omitempty"`
	Highlights   []string    `json:"highlights,omitempty"` // resume-ready bullet points
	Origins      []SourceTag `json:"origins,omitempty"`
}

// Skill keeps the first-seen casing of a merged skill plus its display
// category and contributing origins.
type Skill struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Origins  []SourceTag `json:"origins,omitempty"`
}

// SourceMeta describes one connected data source on a profile.
type SourceMeta struct {
	Connected   bool      `json:"connected"`
	Ref         string    `json:"ref,omitempty"` // filename, username or profile id
	LastUpdated time.Time `json:"lastUpdated"`
}

// Profile is the merged, user-owned resume document. One per user.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Summary  string `json:"summary,omitempty"`

	Experience     []ExperienceItem `json:"experience"`
	Education      []EducationItem  `json:"education"`
	Certifications []Certification  `json:"certifications"`
	Achievements   []Achievement    `json:"achievements"`
	Projects       []Project        `json:"projects"`
	Skills         []Skill          `json:"skills"`

	Sources map[SourceTag]SourceMeta `json:"sourceMetadata"`
}

// IsZero reports whether the profile has never been populated.
func (p Profile) IsZero() bool {
	return p.Name == "" && p.Email == "" && len(p.Sources) == 0
}

// Draft is a validated but unconfirmed extraction result for a single
// source. It carries plain skills; categorization and origin tagging happen
// at merge time.
type Draft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Summary  string `json:"summary,omitempty"`

	Experience     []ExperienceItem `json:"experience"`
	Education      []EducationItem  `json:"education"`
	Certifications []Certification  `json:"certifications"`
	Achievements   []Achievement    `json:"achievements"`
	Projects       []Project        `json:"projects"`
	Skills         []string         `json:"skills"`

	// SpokenLanguages come from profile-derived language lists (LinkedIn)
	// and feed the Languages display bucket.
	SpokenLanguages []string `json:"spokenLanguages,omitempty"`
	// LanguageStats come from repository language statistics (GitHub) and
	// feed the Programming Languages display bucket.
	LanguageStats []string `json:"languageStats,omitempty"`

	// SourceRef names the concrete input: filename, username, profile id.
	SourceRef string `json:"sourceRef,omitempty"`
}

// Upload stores metadata of an uploaded resume file.
type Upload struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mimeType"`
	Size        int64     `json:"size"`
	StorageKey  string    `json:"-"`
	StorageURL  string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadRepository persists uploaded file metadata.
type UploadRepository interface {
	Create(ctx context.Context, u Upload) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Upload, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Upload, error)
	// DeleteForOwner returns the deleted metadata for file cleanup.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Upload, error)
}

// ProfileRepository persists the merged profile document. Save must write
// the document and its per-source metadata atomically.
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (Profile, error)
	Save(ctx context.Context, userID uuid.UUID, p Profile) error
}
