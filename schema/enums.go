package schema

// DatabaseBackend identifies the session persistence backend.
type DatabaseBackend string

// Supported database backends.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// OutputMode identifies the output format for CLI results.
type OutputMode string

// Supported output modes.
const (
	TextOut OutputMode = "text"
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// Analysis registry names. The analysis set is fixed at build time.
const (
	AnalysisLocation = "location"
	AnalysisFunction = "function"
	AnalysisLevel    = "level"
	AnalysisTenure   = "tenure"
	AnalysisManager  = "manager"
)

// AnalysisNames lists every registered analysis in presentation order.
var AnalysisNames = []string{
	AnalysisLocation,
	AnalysisFunction,
	AnalysisLevel,
	AnalysisTenure,
	AnalysisManager,
}
