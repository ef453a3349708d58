package detect

import (
	"os"
	"path/filepath"
)

const (
	pythonRequirementsMarkerConstant = "requirements.txt"
	pythonProjectMarkerConstant      = "pyproject.toml"
	nodePackageMarkerConstant        = "package.json"
	typescriptConfigMarkerConstant   = "tsconfig.json"
	goModuleMarkerConstant           = "go.mod"
	mavenBuildMarkerConstant         = "pom.xml"
	gradleBuildMarkerConstant        = "build.gradle"
	rustManifestMarkerConstant       = "Cargo.toml"
	terraformDirectoryMarkerConstant = "terraform"
	vercelConfigMarkerConstant       = "vercel.json"
	workflowsDirectoryMarkerConstant = ".github/workflows"
	containerBuildMarkerConstant     = "Dockerfile"

	languagePythonConstant     = "python"
	languageJavaScriptConstant = "javascript"
	languageTypeScriptConstant = "typescript"
	languageGoConstant         = "go"
	languageJavaConstant       = "java"
	languageRustConstant       = "rust"

	cloudProviderAWSConstant    = "aws"
	cloudProviderVercelConstant = "vercel"
)

// Detector infers a ProjectContext from marker files present under a project root.
type Detector struct{}

// NewDetector constructs a marker-based project context detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectContext scans the project root for marker files and returns the detected context.
// The scan is purely existential: marker presence decides the outcome, file contents are never read.
func (detector *Detector) DetectContext(projectRoot string) ProjectContext {
	return ProjectContext{
		Languages:        detector.detectLanguages(projectRoot),
		Frameworks:       []string{},
		CloudProviders:   detector.detectCloudProviders(projectRoot),
		Maturity:         detector.detectMaturity(projectRoot),
		WorkingDirectory: projectRoot,
	}
}

func (detector *Detector) detectLanguages(projectRoot string) []string {
	languages := []string{}

	if markerExists(projectRoot, pythonRequirementsMarkerConstant) || markerExists(projectRoot, pythonProjectMarkerConstant) {
		languages = append(languages, languagePythonConstant)
	}

	if markerExists(projectRoot, nodePackageMarkerConstant) {
		if markerExists(projectRoot, typescriptConfigMarkerConstant) {
			languages = append(languages, languageTypeScriptConstant)
		} else {
			languages = append(languages, languageJavaScriptConstant)
		}
	}

	if markerExists(projectRoot, goModuleMarkerConstant) {
		languages = append(languages, languageGoConstant)
	}

	if markerExists(projectRoot, mavenBuildMarkerConstant) || markerExists(projectRoot, gradleBuildMarkerConstant) {
		languages = append(languages, languageJavaConstant)
	}

	if markerExists(projectRoot, rustManifestMarkerConstant) {
		languages = append(languages, languageRustConstant)
	}

	return languages
}

func (detector *Detector) detectCloudProviders(projectRoot string) []string {
	cloudProviders := []string{}

	if markerExists(projectRoot, terraformDirectoryMarkerConstant) {
		cloudProviders = append(cloudProviders, cloudProviderAWSConstant)
	}

	if markerExists(projectRoot, vercelConfigMarkerConstant) {
		cloudProviders = append(cloudProviders, cloudProviderVercelConstant)
	}

	return cloudProviders
}

// detectMaturity applies the two-step upgrade ladder: a CI workflow directory lifts
// the tier to pre-production, and a container build file on top of that to production.
func (detector *Detector) detectMaturity(projectRoot string) MaturityTier {
	if !markerExists(projectRoot, workflowsDirectoryMarkerConstant) {
		return MaturityPrototype
	}
	if markerExists(projectRoot, containerBuildMarkerConstant) {
		return MaturityProduction
	}
	return MaturityPreProduction
}

func markerExists(projectRoot string, markerRelativePath string) bool {
	_, statError := os.Stat(filepath.Join(projectRoot, filepath.FromSlash(markerRelativePath)))
	return statError == nil
}
