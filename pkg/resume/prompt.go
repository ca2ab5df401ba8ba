package resume

import "fmt"

// Kind names the input a draft is extracted from.
type Kind string

const (
	KindResumeUpload    Kind = "resume_upload"
	KindGitHubRepo      Kind = "github_repo"
	KindLinkedInProfile Kind = "linkedin_profile"
)

const extractionSystem = "You are a resume parser. You return a single valid JSON object and nothing else: " +
	"no explanations, no markdown, no code blocks."

// draftContract is the JSON shape every extraction must produce. It matches
// the Draft type field for field.
const draftContract = `{
  "name": "Full name as string",
  "email": "Email address as string",
  "phone": "Phone number as string or null",
  "location": "Location as string or null",
  "summary": "Professional summary as string or null",
  "experience": [
    {
      "company": "Company name as string",
      "position": "Job title as string",
      "duration": "Duration as string",
      "description": "Job description as string or null"
    }
  ],
  "education": [
    {
      "institution": "School/University name as string",
      "degree": "Degree name as string",
      "field": "Field of study as string",
      "graduationYear": "4-digit year as string",
      "startYear": "4-digit year as string, only when a range was given, else null"
    }
  ],
  "certifications": [
    {
      "name": "Certification name as string",
      "issuer": "Issuing organization as string",
      "date": "Date as string",
      "url": "Credential URL as string or null"
    }
  ],
  "achievements": [
    {
      "title": "Achievement title as string",
      "type": "One of: achievement, competition, hackathon",
      "date": "Date as string",
      "description": "Description as string",
      "position": "Placement as string or null",
      "organization": "Organizing body as string or null",
      "url": "URL as string or null"
    }
  ],
  "projects": [
    {
      "name": "Project name as string",
      "description": "Project description as string",
      "technologies": ["Tech 1", "Tech 2"],
      "duration": "Duration as string or null",
      "url": "Project URL as string or null"
    }
  ],
  "skills": ["Skill 1", "Skill 2"]
}`

const extractionRules = `CRITICAL INSTRUCTIONS:
1. Return ONLY a valid JSON object, no other text
2. Use double quotes for all strings
3. Use null for missing optional fields
4. Do not include trailing commas in arrays or objects
5. Do not include empty strings or null values in arrays
6. Do not use undefined, NaN, or Infinity values
7. Empty lists must be []
8. Ensure the response is complete and properly closed
9. Keep descriptions concise but complete; summarize overly long ones
10. Do not invent facts that are not in the input`

// resumePrompt builds the instruction for parsing an uploaded resume. The
// resume text follows the instruction; when the text is empty the file is
// attached inline instead.
func resumePrompt(resumeText string) string {
	p := fmt.Sprintf(
		"Analyze the provided resume and extract its information into a JSON object.\n\n%s\n\nREQUIRED JSON STRUCTURE:\n%s",
		extractionRules, draftContract,
	)
	if resumeText != "" {
		p += fmt.Sprintf("\n\nResume text between markers:\n<<<\n%s\n>>>", resumeText)
	}
	return p
}

// RepoFacts is the metadata handed to the model for a single repository
// assessment.
type RepoFacts struct {
	Name        string
	Description string
	Language    string
	URL         string
	Stars       int
	SizeKB      int
}

// repoAnalysisContract is the JSON shape of a per-repository assessment.
// It matches the RepoAnalysis type field for field.
const repoAnalysisContract = `{
  "complexity": "Technical complexity as a number between 1 and 10",
  "impact": "Practical impact as a number between 1 and 10",
  "skills": ["Skill or technology demonstrated by the project"],
  "atsPoints": ["Resume-ready bullet point about the project"],
  "analysis": "Brief technical assessment as string"
}`

// githubRepoPrompt builds the instruction for assessing one repository.
func githubRepoPrompt(f RepoFacts) string {
	lang := f.Language
	if lang == "" {
		lang = "not specified"
	}
	desc := f.Description
	if desc == "" {
		desc = "no description available"
	}
	return fmt.Sprintf(
		"Analyze this GitHub project and provide a technical assessment as a JSON object.\n\n"+
			"%s\n\nREQUIRED JSON STRUCTURE:\n%s\n\n"+
			"Project details:\n- Name: %s\n- Description: %s\n- Language: %s\n- Stars: %d\n- Size: %d KB\n- URL: %s",
		extractionRules, repoAnalysisContract,
		f.Name, desc, lang, f.Stars, f.SizeKB, f.URL,
	)
}

// linkedinPrompt builds the instruction for normalizing a raw LinkedIn
// profile payload into the draft shape.
func linkedinPrompt(profileJSON string) string {
	return fmt.Sprintf(
		"Normalize the following LinkedIn profile data into a resume JSON object.\n"+
			"Map positions to experience, schools to education, and keep certifications.\n"+
			"Spoken languages must NOT be listed under skills.\n\n%s\n\nREQUIRED JSON STRUCTURE:\n%s\n\nLinkedIn profile data:\n<<<\n%s\n>>>",
		extractionRules, draftContract, profileJSON,
	)
}
