package analysis

import "strings"

// Skill categories used for diversification scoring.
const (
	CategoryLanguage    = "programming_language"
	CategoryFrontend    = "frontend"
	CategoryBackend     = "backend"
	CategoryDatabase    = "database"
	CategoryDataScience = "data_science"
	CategoryDevOps      = "devops"
	CategoryCloud       = "cloud"
	CategoryMobile      = "mobile"
	CategoryTesting     = "testing"
	CategoryOther       = "other"
)

type skillMapping struct {
	Skill    string
	Category string
}

// dependencySkills maps well-known package names, as they appear in
// dependency manifests, to the skill they evidence.
var dependencySkills = map[string]skillMapping{
	// Frontend
	"react":     {"React", CategoryFrontend},
	"react-dom": {"React", CategoryFrontend},
	"vue":       {"Vue.js", CategoryFrontend},
	"angular":   {"Angular", CategoryFrontend},
	"next":      {"Next.js", CategoryFrontend},
	"svelte":    {"Svelte", CategoryFrontend},
	"tailwindcss": {"Tailwind CSS", CategoryFrontend},

	// Backend
	"express":                 {"Express", CategoryBackend},
	"django":                  {"Django", CategoryBackend},
	"flask":                   {"Flask", CategoryBackend},
	"fastapi":                 {"FastAPI", CategoryBackend},
	"rails":                   {"Ruby on Rails", CategoryBackend},
	"spring-boot":             {"Spring Boot", CategoryBackend},
	"github.com/gin-gonic/gin": {"Gin", CategoryBackend},
	"github.com/labstack/echo": {"Echo", CategoryBackend},
	"graphql":                 {"GraphQL", CategoryBackend},

	// Database
	"pg":                      {"PostgreSQL", CategoryDatabase},
	"psycopg2":                {"PostgreSQL", CategoryDatabase},
	"psycopg2-binary":         {"PostgreSQL", CategoryDatabase},
	"github.com/jackc/pgx/v5": {"PostgreSQL", CategoryDatabase},
	"mysql":                   {"MySQL", CategoryDatabase},
	"mysql2":                  {"MySQL", CategoryDatabase},
	"mongoose":                {"MongoDB", CategoryDatabase},
	"pymongo":                 {"MongoDB", CategoryDatabase},
	"redis":                   {"Redis", CategoryDatabase},
	"sqlalchemy":              {"SQLAlchemy", CategoryDatabase},
	"prisma":                  {"Prisma", CategoryDatabase},

	// Data science
	"pandas":       {"Pandas", CategoryDataScience},
	"numpy":        {"NumPy", CategoryDataScience},
	"scikit-learn": {"scikit-learn", CategoryDataScience},
	"tensorflow":   {"TensorFlow", CategoryDataScience},
	"torch":        {"PyTorch", CategoryDataScience},
	"matplotlib":   {"Matplotlib", CategoryDataScience},

	// DevOps and cloud
	"docker":           {"Docker", CategoryDevOps},
	"kubernetes":       {"Kubernetes", CategoryDevOps},
	"ansible":          {"Ansible", CategoryDevOps},
	"boto3":            {"AWS", CategoryCloud},
	"aws-sdk":          {"AWS", CategoryCloud},
	"google-cloud":     {"Google Cloud", CategoryCloud},
	"azure-sdk":        {"Azure", CategoryCloud},

	// Mobile
	"react-native": {"React Native", CategoryMobile},
	"flutter":      {"Flutter", CategoryMobile},

	// Testing
	"jest":                          {"Jest", CategoryTesting},
	"mocha":                         {"Mocha", CategoryTesting},
	"pytest":                        {"pytest", CategoryTesting},
	"cypress":                       {"Cypress", CategoryTesting},
	"github.com/stretchr/testify":   {"Go Testing", CategoryTesting},
	"rspec":                         {"RSpec", CategoryTesting},
}

// categorize classifies a dependency that has no explicit mapping by keyword.
func categorize(dep string) string {
	d := strings.ToLower(dep)
	switch {
	case strings.Contains(d, "test") || strings.Contains(d, "spec"):
		return CategoryTesting
	case strings.Contains(d, "sql") || strings.Contains(d, "db") || strings.Contains(d, "database"):
		return CategoryDatabase
	case strings.Contains(d, "aws") || strings.Contains(d, "azure") || strings.Contains(d, "gcp") || strings.Contains(d, "cloud"):
		return CategoryCloud
	case strings.Contains(d, "react") || strings.Contains(d, "css") || strings.Contains(d, "html") || strings.Contains(d, "ui"):
		return CategoryFrontend
	case strings.Contains(d, "docker") || strings.Contains(d, "k8s") || strings.Contains(d, "terraform") || strings.Contains(d, "ci"):
		return CategoryDevOps
	default:
		return CategoryOther
	}
}

// testingFrameworks flag a repository as having automated tests when they
// appear among its dependencies.
var testingFrameworks = map[string]bool{
	"jest":                        true,
	"mocha":                       true,
	"vitest":                      true,
	"pytest":                      true,
	"unittest2":                   true,
	"cypress":                     true,
	"rspec":                       true,
	"junit":                       true,
	"github.com/stretchr/testify": true,
}
