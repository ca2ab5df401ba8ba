package github

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/artem13815/resumic/pkg/nlp"
	"github.com/artem13815/resumic/pkg/resume"
)

const (
	// maxProjects caps how many repositories become profile projects.
	maxProjects = 8
	// maxLanguages caps the language-stat skills taken from byte counts.
	maxLanguages = 6
)

// RepoAnalyzer assesses one repository. Satisfied by the resume extraction
// service, which runs the model output through repair and validation.
type RepoAnalyzer interface {
	ExtractRepoAnalysis(ctx context.Context, f resume.RepoFacts) (resume.RepoAnalysis, error)
}

// Service converts a GitHub account into a profile draft: the most starred
// original repositories become projects and the aggregated language
// statistics become programming-language skills.
type Service struct {
	client   *Client
	analyzer RepoAnalyzer
	log      *slog.Logger
}

// NewService wires the REST client and an optional analyzer used to score
// repositories and write resume-ready highlights for them.
func NewService(client *Client, analyzer RepoAnalyzer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, analyzer: analyzer, log: log}
}

// BuildDraft fetches the account's public repositories and produces a
// draft scoped to projects and language skills. Per-repository language
// lookups and model assessments are best effort: a failed lookup degrades
// the record, it never fails the draft.
func (s *Service) BuildDraft(ctx context.Context, username string) (resume.Draft, error) {
	repos, err := s.client.ListRepos(ctx, username)
	if err != nil {
		return resume.Draft{}, err
	}

	picked := pickRepos(repos)
	langTotals := make(map[string]int64)

	var scored []scoredProject
	topics := make(map[string]bool)
	for _, r := range picked {
		techs := []string{}
		langs, err := s.client.Languages(ctx, username, r.Name)
		if err != nil {
			s.log.Warn("language lookup failed",
				slog.String("repo", r.FullName), slog.String("error", err.Error()))
			if r.Language != "" {
				techs = append(techs, r.Language)
			}
		} else {
			for lang, bytes := range langs {
				langTotals[lang] += bytes
			}
			techs = append(techs, topLanguages(langs, 4)...)
		}
		for _, t := range r.Topics {
			topics[t] = true
		}

		p := resume.Project{
			Name:         r.Name,
			Description:  strings.TrimSpace(r.Description),
			Technologies: techs,
			URL:          r.HTMLURL,
		}
		score := float64(r.Stars)
		if a, ok := s.analyze(ctx, r); ok {
			if p.Description == "" {
				p.Description = a.Analysis
			}
			for _, sk := range a.Skills {
				p.Technologies = appendTech(p.Technologies, sk)
			}
			p.Highlights = a.ATSPoints
			score = a.Complexity*0.4 + a.Impact*0.4 + float64(r.Size)/1000*0.2
		}
		scored = append(scored, scoredProject{project: p, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	projects := make([]resume.Project, 0, len(scored))
	for _, sp := range scored {
		projects = append(projects, sp.project)
	}

	skills := make([]string, 0, len(topics))
	for t := range topics {
		skills = append(skills, t)
	}
	sort.Strings(skills)

	return resume.Draft{
		Projects:      projects,
		Skills:        skills,
		LanguageStats: topLanguages(langTotals, maxLanguages),
		SourceRef:     username,
	}, nil
}

type scoredProject struct {
	project resume.Project
	score   float64
}

// analyze runs the model assessment for one repository. Failures are
// logged and the repository keeps its plain metadata.
func (s *Service) analyze(ctx context.Context, r Repo) (resume.RepoAnalysis, bool) {
	if s.analyzer == nil {
		return resume.RepoAnalysis{}, false
	}
	a, err := s.analyzer.ExtractRepoAnalysis(ctx, resume.RepoFacts{
		Name:        r.Name,
		Description: r.Description,
		Language:    r.Language,
		URL:         r.HTMLURL,
		Stars:       r.Stars,
		SizeKB:      r.Size,
	})
	if err != nil {
		s.log.Warn("repository assessment failed",
			slog.String("repo", r.FullName), slog.String("error", err.Error()))
		return resume.RepoAnalysis{}, false
	}
	return a, true
}

func appendTech(techs []string, skill string) []string {
	for _, t := range techs {
		if nlp.SameSkill(t, skill) {
			return techs
		}
	}
	return append(techs, skill)
}

// pickRepos drops forks and empty repositories and keeps the most starred
// ones, ties broken by recent activity.
func pickRepos(repos []Repo) []Repo {
	var own []Repo
	for _, r := range repos {
		if r.Fork || r.Size == 0 {
			continue
		}
		own = append(own, r)
	}
	sort.SliceStable(own, func(i, j int) bool {
		if own[i].Stars != own[j].Stars {
			return own[i].Stars > own[j].Stars
		}
		return own[i].PushedAt.After(own[j].PushedAt)
	})
	if len(own) > maxProjects {
		own = own[:maxProjects]
	}
	return own
}

func topLanguages(langs map[string]int64, n int) []string {
	type stat struct {
		name  string
		bytes int64
	}
	stats := make([]stat, 0, len(langs))
	for name, b := range langs {
		stats = append(stats, stat{name, b})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].bytes != stats[j].bytes {
			return stats[i].bytes > stats[j].bytes
		}
		return stats[i].name < stats[j].name
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	out := make([]string, 0, len(stats))
	for _, s := range stats {
		out = append(out, s.name)
	}
	return out
}
