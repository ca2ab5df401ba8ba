package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func resumeDraft() Draft {
	return Draft{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Experience: []ExperienceItem{
			{Company: "Acme", Position: "Engineer", Duration: "2020-2022"},
		},
		Projects: []Project{
			{Name: "Foo", Description: "CLI tool", Technologies: []string{"Go"}},
		},
		Skills:    []string{"Go", "Postgres"},
		SourceRef: "jane.pdf",
	}
}

func TestMergeIntoEmptyProfile(t *testing.T) {
	p, warns := Merge(Profile{}, resumeDraft(), SourceResume, mergeNow)
	require.Empty(t, warns)

	assert.Equal(t, "Jane Doe", p.Name)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, []SourceTag{SourceResume}, p.Experience[0].Origins)
	require.Len(t, p.Skills, 2)
	assert.Equal(t, CategoryTechnologies, p.Skills[0].Category)

	meta := p.Sources[SourceResume]
	assert.True(t, meta.Connected)
	assert.Equal(t, "jane.pdf", meta.Ref)
	assert.Equal(t, mergeNow, meta.LastUpdated)
}

func TestMergeIsIdempotent(t *testing.T) {
	once, _ := Merge(Profile{}, resumeDraft(), SourceResume, mergeNow)
	twice, _ := Merge(once, resumeDraft(), SourceResume, mergeNow)
	assert.Equal(t, once, twice)
}

func TestMergeFillsGapsWithoutOverwriting(t *testing.T) {
	p, _ := Merge(Profile{}, resumeDraft(), SourceResume, mergeNow)

	gh := Draft{
		Projects: []Project{
			{Name: "foo", Description: "a different blurb", URL: "https://github.com/jane/foo", Technologies: []string{"Golang", "Docker"}},
		},
		SourceRef: "jane",
	}
	p, _ = Merge(p, gh, SourceGitHub, mergeNow)

	require.Len(t, p.Projects, 1, "name match is case-insensitive")
	proj := p.Projects[0]
	assert.Equal(t, "CLI tool", proj.Description, "existing description wins")
	assert.Equal(t, "https://github.com/jane/foo", proj.URL, "empty URL is filled")
	assert.Equal(t, []string{"Go", "Docker"}, proj.Technologies, "Golang folds into Go")
	assert.ElementsMatch(t, []SourceTag{SourceResume, SourceGitHub}, proj.Origins)
}

func TestMergeExperienceSameCompanyDifferentPosition(t *testing.T) {
	p, _ := Merge(Profile{}, resumeDraft(), SourceResume, mergeNow)

	in := Draft{Experience: []ExperienceItem{
		{Company: "Acme", Position: "Team Lead", Duration: "2022-2024"},
	}}
	p, warns := Merge(p, in, SourceLinkedIn, mergeNow)

	assert.Len(t, p.Experience, 2, "different position is a separate record")
	require.Len(t, warns, 1)
	assert.Equal(t, "experience", warns[0].Field)
}

func TestMergeSkillsAreOrderIndependent(t *testing.T) {
	a := Draft{Name: "J", Email: "j@x.com", Skills: []string{"Go", "Kubernetes", "Postgres"}}
	b := Draft{Name: "J", Email: "j@x.com", Skills: []string{"postgresql", "k8s", "golang"}}

	p1, _ := Merge(Profile{}, a, SourceResume, mergeNow)
	p1, _ = Merge(p1, b, SourceLinkedIn, mergeNow)

	p2, _ := Merge(Profile{}, b, SourceLinkedIn, mergeNow)
	p2, _ = Merge(p2, a, SourceResume, mergeNow)

	assert.Len(t, p1.Skills, 3)
	assert.Len(t, p2.Skills, 3)

	names := func(p Profile) []string {
		out := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			out = append(out, s.Name)
		}
		return out
	}
	// First-seen casing wins, so the spellings differ but the set does not.
	assert.Len(t, names(p1), len(names(p2)))
}

func TestMergeSkillCategoryPrecedence(t *testing.T) {
	p, _ := Merge(Profile{}, Draft{Name: "J", Email: "j@x.com", Skills: []string{"Go"}}, SourceResume, mergeNow)
	p, _ = Merge(p, Draft{LanguageStats: []string{"Go"}}, SourceGitHub, mergeNow)

	require.Len(t, p.Skills, 1)
	assert.Equal(t, CategoryProgrammingLanguages, p.Skills[0].Category,
		"language-stat evidence upgrades Technologies to Programming Languages")
}

func TestMergeSpokenLanguagesBucket(t *testing.T) {
	p, _ := Merge(Profile{}, Draft{Name: "J", Email: "j@x.com", SpokenLanguages: []string{"English", "German"}}, SourceLinkedIn, mergeNow)

	require.Len(t, p.Skills, 2)
	for _, s := range p.Skills {
		assert.Equal(t, CategoryLanguages, s.Category)
	}
}

func TestDisconnectRemovesSoleContributions(t *testing.T) {
	p, _ := Merge(Profile{}, resumeDraft(), SourceResume, mergeNow)
	gh := Draft{
		Projects:      []Project{{Name: "bar", Description: "service", Technologies: []string{"Go"}}},
		LanguageStats: []string{"Rust"},
		SourceRef:     "jane",
	}
	p, _ = Merge(p, gh, SourceGitHub, mergeNow)
	require.Len(t, p.Projects, 2)

	p = Disconnect(p, SourceGitHub, mergeNow)

	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Foo", p.Projects[0].Name)
	for _, s := range p.Skills {
		assert.NotEqual(t, "Rust", s.Name)
	}
	assert.False(t, p.Sources[SourceGitHub].Connected)
	assert.True(t, p.Sources[SourceResume].Connected)
}

func TestDisconnectKeepsSharedRecords(t *testing.T) {
	p, _ := Merge(Profile{}, resumeDraft(), SourceResume, mergeNow)
	gh := Draft{Projects: []Project{{Name: "Foo", URL: "https://github.com/jane/foo", Technologies: []string{"Go"}}}}
	p, _ = Merge(p, gh, SourceGitHub, mergeNow)

	p = Disconnect(p, SourceGitHub, mergeNow)

	require.Len(t, p.Projects, 1, "record contributed by the resume too survives")
	assert.Equal(t, []SourceTag{SourceResume}, p.Projects[0].Origins)
}

func TestMergeEducationLastWriteWins(t *testing.T) {
	p, _ := Merge(Profile{}, Draft{
		Name: "J", Email: "j@x.com",
		Education: []EducationItem{{Institution: "MIT", Degree: "BSc", Field: "CS", GraduationYear: "2019"}},
	}, SourceResume, mergeNow)

	p, _ = Merge(p, Draft{
		Education: []EducationItem{{Institution: "MIT", Degree: "BSc", Field: "Computer Science", GraduationYear: "2019", StartYear: "2015"}},
	}, SourceLinkedIn, mergeNow)

	require.Len(t, p.Education, 1)
	assert.Equal(t, "Computer Science", p.Education[0].Field)
	assert.Equal(t, "2015", p.Education[0].StartYear)
}
