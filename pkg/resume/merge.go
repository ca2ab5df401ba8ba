package resume

import (
	"time"

	"github.com/artem13815/resumic/pkg/nlp"
)

// MergeWarning flags a record that looked related to an existing one but
// was kept separate. Warnings are informational, the merge never blocks.
type MergeWarning struct {
	Field    string `json:"field"`
	Existing string `json:"existing"`
	Incoming string `json:"incoming"`
}

// Merge folds a confirmed draft from one source into the profile. The
// operation is idempotent: merging the same draft twice leaves the profile
// unchanged. Existing values win, incoming data only fills gaps and adds
// new records.
func Merge(p Profile, d Draft, origin SourceTag, now time.Time) (Profile, []MergeWarning) {
	var warns []MergeWarning

	p.Name = fillString(p.Name, d.Name)
	p.Email = fillString(p.Email, d.Email)
	p.Phone = fillString(p.Phone, d.Phone)
	p.Location = fillString(p.Location, d.Location)
	p.Summary = fillString(p.Summary, d.Summary)

	p.Experience, warns = mergeExperience(p.Experience, d.Experience, origin, warns)
	p.Education = mergeEducation(p.Education, d.Education)
	p.Certifications = mergeCertifications(p.Certifications, d.Certifications)
	p.Achievements = mergeAchievements(p.Achievements, d.Achievements)
	p.Projects = mergeProjects(p.Projects, d.Projects, origin)
	p.Skills = mergeSkills(p.Skills, d, origin)

	if p.Sources == nil {
		p.Sources = make(map[SourceTag]SourceMeta)
	}
	meta := p.Sources[origin]
	meta.Connected = true
	if d.SourceRef != "" {
		meta.Ref = d.SourceRef
	}
	meta.LastUpdated = now
	p.Sources[origin] = meta

	return p, warns
}

// Disconnect removes one source's contributions. Records kept alive by
// another source only lose the tag; records owned solely by the source are
// dropped. Untagged records (education, certifications, achievements) stay.
func Disconnect(p Profile, origin SourceTag, now time.Time) Profile {
	p.Experience = filterExperience(p.Experience, origin)
	p.Projects = filterProjects(p.Projects, origin)
	p.Skills = filterSkills(p.Skills, origin)

	if meta, ok := p.Sources[origin]; ok {
		meta.Connected = false
		meta.LastUpdated = now
		p.Sources[origin] = meta
	}
	return p
}

func fillString(existing, incoming string) string {
	if existing != "" {
		return existing
	}
	return incoming
}

func hasOrigin(origins []SourceTag, tag SourceTag) bool {
	for _, o := range origins {
		if o == tag {
			return true
		}
	}
	return false
}

func addOrigin(origins []SourceTag, tag SourceTag) []SourceTag {
	if hasOrigin(origins, tag) {
		return origins
	}
	return append(origins, tag)
}

func removeOrigin(origins []SourceTag, tag SourceTag) []SourceTag {
	out := origins[:0:0]
	for _, o := range origins {
		if o != tag {
			out = append(out, o)
		}
	}
	return out
}

func mergeExperience(existing, incoming []ExperienceItem, origin SourceTag, warns []MergeWarning) ([]ExperienceItem, []MergeWarning) {
	out := append([]ExperienceItem(nil), existing...)
	byKey := make(map[string]int, len(out))
	byCompany := make(map[string]int, len(out))
	for i, e := range out {
		byKey[nlp.Key(e.Company, e.Position)] = i
		byCompany[nlp.Key(e.Company)] = i
	}

	for _, in := range incoming {
		key := nlp.Key(in.Company, in.Position)
		if i, ok := byKey[key]; ok {
			out[i].Duration = fillString(out[i].Duration, in.Duration)
			out[i].Description = fillString(out[i].Description, in.Description)
			out[i].Origins = addOrigin(out[i].Origins, origin)
			continue
		}
		if i, ok := byCompany[nlp.Key(in.Company)]; ok {
			warns = append(warns, MergeWarning{
				Field:    "experience",
				Existing: out[i].Company + " / " + out[i].Position,
				Incoming: in.Company + " / " + in.Position,
			})
		}
		in.Origins = []SourceTag{origin}
		byKey[key] = len(out)
		byCompany[nlp.Key(in.Company)] = len(out)
		out = append(out, in)
	}
	return out, warns
}

func mergeEducation(existing, incoming []EducationItem) []EducationItem {
	out := append([]EducationItem(nil), existing...)
	byKey := make(map[string]int, len(out))
	for i, e := range out {
		byKey[nlp.Key(e.Institution, e.Degree)] = i
	}
	for _, in := range incoming {
		key := nlp.Key(in.Institution, in.Degree)
		if i, ok := byKey[key]; ok {
			out[i].Field = fillString(in.Field, out[i].Field)
			out[i].GraduationYear = fillString(in.GraduationYear, out[i].GraduationYear)
			out[i].StartYear = fillString(in.StartYear, out[i].StartYear)
			continue
		}
		byKey[key] = len(out)
		out = append(out, in)
	}
	return out
}

func mergeCertifications(existing, incoming []Certification) []Certification {
	out := append([]Certification(nil), existing...)
	byKey := make(map[string]int, len(out))
	for i, c := range out {
		byKey[nlp.Key(c.Name, c.Issuer)] = i
	}
	for _, in := range incoming {
		key := nlp.Key(in.Name, in.Issuer)
		if i, ok := byKey[key]; ok {
			out[i].Date = fillString(in.Date, out[i].Date)
			out[i].URL = fillString(in.URL, out[i].URL)
			continue
		}
		byKey[key] = len(out)
		out = append(out, in)
	}
	return out
}

func mergeAchievements(existing, incoming []Achievement) []Achievement {
	out := append([]Achievement(nil), existing...)
	byKey := make(map[string]int, len(out))
	for i, a := range out {
		byKey[nlp.Key(a.Title, a.Date)] = i
	}
	for _, in := range incoming {
		key := nlp.Key(in.Title, in.Date)
		if i, ok := byKey[key]; ok {
			out[i].Description = fillString(in.Description, out[i].Description)
			out[i].Position = fillString(in.Position, out[i].Position)
			out[i].Organization = fillString(in.Organization, out[i].Organization)
			out[i].URL = fillString(in.URL, out[i].URL)
			continue
		}
		byKey[key] = len(out)
		out = append(out, in)
	}
	return out
}

func mergeProjects(existing, incoming []Project, origin SourceTag) []Project {
	out := append([]Project(nil), existing...)
	byKey := make(map[string]int, len(out))
	for i, p := range out {
		byKey[nlp.Key(p.Name)] = i
	}
	for _, in := range incoming {
		key := nlp.Key(in.Name)
		if i, ok := byKey[key]; ok {
			out[i].Description = fillString(out[i].Description, in.Description)
			out[i].Duration = fillString(out[i].Duration, in.Duration)
			out[i].URL = fillString(out[i].URL, in.URL)
			out[i].Technologies = unionTech(out[i].Technologies, in.Technologies)
			if len(out[i].Highlights) == 0 {
				out[i].Highlights = in.Highlights
			}
			out[i].Origins = addOrigin(out[i].Origins, origin)
			continue
		}
		in.Origins = []SourceTag{origin}
		byKey[key] = len(out)
		out = append(out, in)
	}
	return out
}

func unionTech(existing, incoming []string) []string {
	out := append([]string(nil), existing...)
	seen := make(map[string]bool, len(out))
	for _, t := range out {
		seen[nlp.CanonicalSkill(t)] = true
	}
	for _, t := range incoming {
		c := nlp.CanonicalSkill(t)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, t)
	}
	return out
}

// categoryRank orders display buckets for conflicting categorizations of
// one skill. Higher wins.
func categoryRank(cat string) int {
	switch cat {
	case CategoryProgrammingLanguages:
		return 2
	case CategoryLanguages:
		return 1
	default:
		return 0
	}
}

func mergeSkills(existing []Skill, d Draft, origin SourceTag) []Skill {
	out := append([]Skill(nil), existing...)
	byKey := make(map[string]int, len(out))
	for i, s := range out {
		byKey[nlp.CanonicalSkill(s.Name)] = i
	}

	add := func(name, category string) {
		key := nlp.CanonicalSkill(name)
		if key == "" {
			return
		}
		if i, ok := byKey[key]; ok {
			if categoryRank(category) > categoryRank(out[i].Category) {
				out[i].Category = category
			}
			out[i].Origins = addOrigin(out[i].Origins, origin)
			return
		}
		byKey[key] = len(out)
		out = append(out, Skill{Name: name, Category: category, Origins: []SourceTag{origin}})
	}

	for _, s := range d.Skills {
		add(s, CategoryTechnologies)
	}
	for _, s := range d.LanguageStats {
		add(s, CategoryProgrammingLanguages)
	}
	for _, s := range d.SpokenLanguages {
		add(s, CategoryLanguages)
	}
	return out
}

func filterExperience(items []ExperienceItem, origin SourceTag) []ExperienceItem {
	out := items[:0:0]
	for _, it := range items {
		if !hasOrigin(it.Origins, origin) {
			out = append(out, it)
			continue
		}
		it.Origins = removeOrigin(it.Origins, origin)
		if len(it.Origins) > 0 {
			out = append(out, it)
		}
	}
	return out
}

func filterProjects(items []Project, origin SourceTag) []Project {
	out := items[:0:0]
	for _, it := range items {
		if !hasOrigin(it.Origins, origin) {
			out = append(out, it)
			continue
		}
		it.Origins = removeOrigin(it.Origins, origin)
		if len(it.Origins) > 0 {
			out = append(out, it)
		}
	}
	return out
}

func filterSkills(items []Skill, origin SourceTag) []Skill {
	out := items[:0:0]
	for _, it := range items {
		if !hasOrigin(it.Origins, origin) {
			out = append(out, it)
			continue
		}
		it.Origins = removeOrigin(it.Origins, origin)
		if len(it.Origins) > 0 {
			out = append(out, it)
		}
	}
	return out
}
