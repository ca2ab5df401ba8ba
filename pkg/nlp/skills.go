package nlp

// skillAliases folds the usual spelling variants onto one canonical form so
// "Golang" from a resume and "Go" from repository language stats count as
// the same skill. Intentionally small; extend as needed.
var skillAliases = map[string]string{
	"golang":     "go",
	"js":         "javascript",
	"ts":         "typescript",
	"postgresql": "postgres",
	"k8s":        "kubernetes",
	"ci cd":      "cicd",
	"rest api":   "rest",
	"node":       "nodejs",
	"node js":    "nodejs",
	"reactjs":    "react",
	"react js":   "react",
	"vuejs":      "vue",
	"vue js":     "vue",
}

// CanonicalSkill returns the canonical comparison form of a skill name:
// normalized and alias-folded. The empty string means the input had no
// usable content.
func CanonicalSkill(skill string) string {
	base := NormalizeText(skill)
	if base == "" {
		return ""
	}
	if canon, ok := skillAliases[base]; ok {
		return canon
	}
	return base
}

// SameSkill reports whether two skill names collapse to the same canonical
// form.
func SameSkill(a, b string) bool {
	ca := CanonicalSkill(a)
	return ca != "" && ca == CanonicalSkill(b)
}
