package consistency

import "regexp"

// expectedBaseTopics lists the topics every rules repository is expected to
// cover in its base category. The table is fixed configuration data.
var expectedBaseTopics = []string{
	"code-quality", "security", "testing", "git", "architecture",
	"refactoring", "documentation", "error-handling", "logging",
}

// subKeyTaxonomy pairs a sub-key (language, framework, or provider name) with
// the topics its corpus is expected to cover.
type subKeyTaxonomy struct {
	subKey         string
	expectedTopics []string
}

var expectedLanguageTopics = []subKeyTaxonomy{
	{subKey: "python", expectedTopics: []string{"coding-standards", "testing", "async", "packaging"}},
	{subKey: "typescript", expectedTopics: []string{"coding-standards", "testing", "types", "async"}},
	{subKey: "go", expectedTopics: []string{"coding-standards", "testing", "concurrency", "error-handling"}},
	{subKey: "java", expectedTopics: []string{"coding-standards", "testing", "spring", "design-patterns"}},
	{subKey: "rust", expectedTopics: []string{"coding-standards", "testing", "ownership", "error-handling"}},
}

var expectedFrameworkTopics = []subKeyTaxonomy{
	{subKey: "fastapi", expectedTopics: []string{"routing", "async", "testing", "validation", "auth"}},
	{subKey: "django", expectedTopics: []string{"models", "views", "testing", "authentication", "admin"}},
	{subKey: "react", expectedTopics: []string{"components", "hooks", "testing", "state", "routing"}},
	{subKey: "nextjs", expectedTopics: []string{"routing", "ssr", "api-routes", "testing", "optimization"}},
}

var expectedCloudTopics = []subKeyTaxonomy{
	{subKey: "aws", expectedTopics: []string{"iam", "security", "deployment", "monitoring", "cost-optimization"}},
	{subKey: "vercel", expectedTopics: []string{"deployment", "environment", "performance", "preview"}},
}

// keywordGroupPatterns are the fixed keyword-group expressions scanned against
// document text (code blocks removed first). Each group covers one technical
// concern; matches are normalized to lower case.
var keywordGroupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(async|await|promise)\b`),
	regexp.MustCompile(`(?i)\b(test|testing|pytest|jest)\b`),
	regexp.MustCompile(`(?i)\b(security|authentication|authorization)\b`),
	regexp.MustCompile(`(?i)\b(api|endpoint|route|handler)\b`),
	regexp.MustCompile(`(?i)\b(database|query|sql|orm)\b`),
	regexp.MustCompile(`(?i)\b(deployment|ci|cd|docker)\b`),
	regexp.MustCompile(`(?i)\b(error|exception|logging)\b`),
	regexp.MustCompile(`(?i)\b(performance|optimization|cache)\b`),
}
